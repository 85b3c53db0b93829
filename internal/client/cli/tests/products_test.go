package tests

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/cli"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/utils"
)

func TestProducts_PrintsCatalog(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, utils.StrPtr("products/pao.jpg"))
	e.b.AddProduct(u.ID, "Bolo", "de milho", 1234.5, nil)

	out, err := e.run("", "products")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Pão")
	assert.Contains(t, out, "R$ 12,50")
	assert.Contains(t, out, "R$ 1.234,50")
	assert.Contains(t, out, e.b.Origin()+"/storage/products/pao.jpg")
	assert.Equal(t, []string{"GET /products"}, e.b.Calls())
}

func TestProducts_Empty(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum produto encontrado.")
}

func TestProducts_BackendFails(t *testing.T) {
	e := newEnv(t)
	e.b.Fail("GET /products", http.StatusInternalServerError, `{"message":"boom"}`)

	_, err := e.run("", "products")
	require.Error(t, err)
	assert.Equal(t, "Erro ao carregar produtos.", err.Error())
}

func TestProductsShow_PrintsDetail(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	p := e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)

	out, err := e.run("", "products", "show", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "name=Pão")
	assert.Contains(t, out, "description=fresco")
	assert.Contains(t, out, "price=R$ 12,50")
	assert.Contains(t, out, "seller=Ana")
	assert.Equal(t, int64(1), p.ID)
}

func TestProductsShow_NotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "products", "show", "42")
	require.Error(t, err)
	assert.Equal(t, "Product not found", err.Error())
}

func TestProductsShow_InvalidID_NoRequest(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "products", "show", "abc")
	require.Error(t, err)
	assert.Empty(t, e.b.Calls())
}

func TestMyProducts_NotLoggedIn(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "my-products")
	require.Error(t, err)

	assert.True(t, errors.Is(err, cli.ErrNotLoggedIn))
	assert.Empty(t, e.b.Calls())
}

func TestMyProducts_RestoresUserFirst(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.login(t)

	_, err := e.run("", "my-products")
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /auth/me", "GET /my-products"}, e.b.Calls())
}

func TestMyProducts_StaleToken_NotLoggedIn(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.login(t)
	e.b.RevokeAll()

	_, err := e.run("", "my-products")
	require.Error(t, err)

	assert.True(t, errors.Is(err, cli.ErrNotLoggedIn))
	assert.Equal(t, "not logged in, run: marketplace login", err.Error())
	assert.Equal(t, []string{"GET /auth/me"}, e.b.Calls())
	assert.Empty(t, e.storedToken(t))
}

func TestMyProducts_RestoreFails_KeepsSession(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)
	e.login(t)
	e.b.Fail("GET /auth/me", http.StatusInternalServerError, `{"message":"boom"}`)

	out, err := e.run("", "my-products")
	require.NoError(t, err)

	assert.Contains(t, out, "Pão")
	assert.NotEmpty(t, e.storedToken(t))
}

func TestMyProducts_ListsOnlyOwn(t *testing.T) {
	e := newEnv(t)
	ana := e.b.AddUser("Ana", "ana@example.com", "secret123")
	bob := e.b.AddUser("Bob", "bob@example.com", "secret123")
	e.b.AddProduct(ana.ID, "Pão", "fresco", 12.5, nil)
	e.b.AddProduct(bob.ID, "Queijo", "minas", 30, nil)
	e.login(t)

	out, err := e.run("", "my-products")
	require.NoError(t, err)

	assert.Contains(t, out, "Pão")
	assert.NotContains(t, out, "Queijo")
	assert.Equal(t, 1, e.b.CallCount("GET /my-products"))
}

func TestMyProducts_BackendFails(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.login(t)
	e.b.Fail("GET /my-products", http.StatusInternalServerError, `{"message":"boom"}`)

	_, err := e.run("", "my-products")
	require.Error(t, err)
	assert.Equal(t, "Erro ao carregar seus produtos.", err.Error())
}

func TestProductCreate_WithImage(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.login(t)
	cli.OpenImage = fakeImage("jpeg-bytes")

	out, err := e.run("", "product", "create",
		"--name", "Pão", "--description", "fresco", "--price", "12.50", "--image", "/tmp/pics/pao.jpg")
	require.NoError(t, err)

	assert.Contains(t, out, "Produto criado com sucesso!")
	require.Len(t, e.b.Products(), 1)
	assert.Equal(t, "Pão", e.b.Products()[0].Name)

	up := e.b.LastUpload()
	require.NotNil(t, up)
	assert.Equal(t, "pao.jpg", up.ImageName)
	assert.Equal(t, []byte("jpeg-bytes"), up.Image)
}

func TestProductCreate_InvalidPrice_NoRequest(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.login(t)

	_, err := e.run("", "product", "create", "--name", "Pão", "--description", "fresco", "--price", "0")
	require.Error(t, err)

	assert.Equal(t, "Por favor, preencha todos os campos corretamente.", err.Error())
	assert.Zero(t, e.b.CallCount("POST /products"))
}

func TestProductCreate_ImageOpenFails(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.login(t)
	cli.OpenImage = func(string) (io.ReadCloser, error) { return nil, errors.New("no such file") }

	_, err := e.run("", "product", "create",
		"--name", "Pão", "--description", "fresco", "--price", "12.50", "--image", "missing.jpg")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "open image")
	assert.Zero(t, e.b.CallCount("POST /products"))
}

func TestProductCreate_NotLoggedIn(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "product", "create", "--name", "Pão", "--description", "fresco", "--price", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrNotLoggedIn))
	assert.Empty(t, e.b.Calls())
}

func TestProductUpdate_KeepsUnsetFields(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	p := e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)
	e.login(t)

	out, err := e.run("", "product", "update", "1", "--price", "14")
	require.NoError(t, err)
	assert.Contains(t, out, "Produto atualizado com sucesso!")

	got, ok := e.b.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Pão", got.Name)
	assert.Equal(t, "fresco", got.Description)
	assert.Equal(t, models.Price(14), got.Price)

	up := e.b.LastUpload()
	require.NotNil(t, up)
	assert.Equal(t, http.MethodPut, up.Fields["_method"])
}

func TestProductUpdate_NotOwn(t *testing.T) {
	e := newEnv(t)
	e.b.AddUser("Ana", "ana@example.com", "secret123")
	bob := e.b.AddUser("Bob", "bob@example.com", "secret123")
	e.b.AddProduct(bob.ID, "Queijo", "minas", 30, nil)
	e.login(t)

	_, err := e.run("", "product", "update", "1", "--price", "14")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "product 1 not found among your products")
	assert.Zero(t, e.b.CallCount("POST /products/1"))
}

func TestProductDelete_Yes(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)
	e.login(t)

	out, err := e.run("", "product", "delete", "1", "--yes")
	require.NoError(t, err)

	assert.Contains(t, out, "Produto excluído com sucesso!")
	assert.Empty(t, e.b.Products())
}

func TestProductDelete_ConfirmedByPrompt(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)
	e.login(t)

	out, err := e.run("sim\n", "product", "delete", "1")
	require.NoError(t, err)

	assert.Contains(t, out, `Tem certeza que deseja excluir o produto "Pão"?`)
	assert.Contains(t, out, "Produto excluído com sucesso!")
	assert.Empty(t, e.b.Products())
}

func TestProductDelete_Declined_NoRequest(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)
	e.login(t)

	out, err := e.run("n\n", "product", "delete", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "cancelled")
	assert.Len(t, e.b.Products(), 1)
	assert.Zero(t, e.b.CallCount("DELETE /products/1"))
}

func TestProductDelete_BackendFails_KeepsProduct(t *testing.T) {
	e := newEnv(t)
	u := e.b.AddUser("Ana", "ana@example.com", "secret123")
	e.b.AddProduct(u.ID, "Pão", "fresco", 12.5, nil)
	e.login(t)
	e.b.Fail("DELETE /products/1", http.StatusInternalServerError, `{"message":"boom"}`)

	_, err := e.run("", "product", "delete", "1", "-y")
	require.Error(t, err)

	assert.Equal(t, "Erro ao excluir produto.", err.Error())
	assert.Len(t, e.b.Products(), 1)
}
