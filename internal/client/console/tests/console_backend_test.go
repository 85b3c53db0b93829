package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/api"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/apitest"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/console"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/memory"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/products"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/session"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/view"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

type stack struct {
	b       *apitest.Backend
	storage *memory.Storage
	sess    *session.Store
	nav     *view.RouteRecorder
	c       *console.Console
	user    models.User
}

func newStack(t *testing.T) *stack {
	t.Helper()

	b := apitest.New(t)
	client := api.NewClient(b.URL())
	st := memory.NewStorage()
	sess := session.NewStore(client, st, nil)
	nav := &view.RouteRecorder{}
	images := view.Images{StorageURL: b.Origin(), Placeholder: "ph.svg"}
	c := console.NewConsole(sess, products.NewRepository(client, sess), nav,
		view.ConfirmerFunc(func(string) bool { return true }),
		view.NewPrinter("pt-BR"), "R$", images, nil)

	return &stack{
		b:       b,
		storage: st,
		sess:    sess,
		nav:     nav,
		c:       c,
		user:    b.AddUser("Ana", "ana@example.com", "secret123"),
	}
}

func TestConsoleBackend_Unauthenticated_NoCalls(t *testing.T) {
	s := newStack(t)

	s.c.Init(context.Background())

	assert.Equal(t, []string{view.RouteLogin}, s.nav.Routes())
	assert.Empty(t, s.b.Calls())
}

func TestConsoleBackend_FullCycle(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	other := s.b.AddUser("Bia", "bia@example.com", "secret123")
	s.b.AddProduct(other.ID, "Bolo", "doce", 30, nil)

	_, err := s.sess.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)

	s.c.Init(ctx)
	assert.Empty(t, s.c.Snapshot().Items, "only own products")

	// создание с изображением
	s.c.OpenCreate()
	s.c.UpdateForm(func(d *console.Draft) {
		*d = console.Draft{Name: "Pão", Description: "fresco", Price: 12.5}
	})
	s.c.SetImage(&models.ImageFile{Name: "pao.jpg", Content: strings.NewReader("IMG")})
	require.True(t, s.c.Submit(ctx))

	up := s.b.LastUpload()
	require.NotNil(t, up)
	assert.Equal(t, "pao.jpg", up.ImageName)
	assert.Equal(t, "12.5", up.Fields["price"])

	snap := s.c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, s.b.Origin()+"/storage/products/pao.jpg", snap.Items[0].ImageURL)
	created := snap.Items[0].Product

	// редактирование без нового изображения сохраняет старое
	s.c.OpenEdit(created)
	s.c.UpdateForm(func(d *console.Draft) { d.Name = "Pão integral" })
	require.True(t, s.c.Submit(ctx))

	up = s.b.LastUpload()
	assert.Equal(t, "PUT", up.Fields["_method"])
	assert.Empty(t, up.ImageName)

	stored, ok := s.b.Product(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Pão integral", stored.Name)
	require.NotNil(t, stored.Image)
	assert.Equal(t, "products/pao.jpg", *stored.Image)

	// удаление
	require.True(t, s.c.Delete(ctx, stored))
	assert.Empty(t, s.c.Snapshot().Items)
	_, ok = s.b.Product(created.ID)
	assert.False(t, ok)

	// выход
	s.c.Logout(ctx)
	assert.Equal(t, view.RouteHome, s.nav.Last())
	assert.False(t, s.sess.IsAuthenticated())
	assert.Equal(t, 1, s.b.CallCount("POST /auth/logout"))
}

func TestConsoleBackend_StaleToken_RedirectsAfterRestore(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.storage.Set(config.TokenKey, s.b.IssueToken(s.user.ID)))
	s.b.RevokeAll()

	// с токеном консоль открывается и ждёт восстановления пользователя
	s.c.Init(ctx)
	assert.Empty(t, s.nav.Routes())
	assert.Equal(t, "Erro ao carregar seus produtos.", s.c.Snapshot().Error)

	// восстановление получает 401 и очищает сессию
	s.sess.Restore(ctx)
	assert.Equal(t, []string{view.RouteLogin}, s.nav.Routes())
	assert.False(t, s.sess.IsAuthenticated())
}

func TestConsoleBackend_LogoutOffline_StillHome(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.sess.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	s.c.Init(ctx)

	s.b.Close()
	s.c.Logout(ctx)

	assert.Equal(t, []string{view.RouteHome}, s.nav.Routes())
	assert.False(t, s.sess.IsAuthenticated())
	assert.Empty(t, s.storage.Snapshot())
}
