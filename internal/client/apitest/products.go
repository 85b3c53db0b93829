package apitest

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// maxUpload — лимит тела multipart формы.
const maxUpload = 8 << 20

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items := b.sortedLocked(func(models.Product) bool { return true })
	for i := range items {
		b.attachOwnerLocked(&items[i])
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ProductResponse{Status: models.StatusSuccess, Data: models.NewProductData(items...)})
}

func (b *Backend) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	p, found := b.products[id]
	if found {
		b.attachOwnerLocked(&p)
	}
	b.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": models.StatusSuccess, "data": p})
}

func (b *Backend) myProducts(w http.ResponseWriter, r *http.Request) {
	owner := currentUserID(r)

	b.mu.Lock()
	items := b.sortedLocked(func(p models.Product) bool { return p.UserID == owner })
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ProductResponse{Status: models.StatusSuccess, Data: models.NewProductData(items...)})
}

func (b *Backend) createProduct(w http.ResponseWriter, r *http.Request) {
	up, errs, ok := b.readUpload(w, r)
	if !ok {
		return
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	price, _ := strconv.ParseFloat(up.Fields["price"], 64)

	var image *string
	if up.ImageName != "" {
		path := "products/" + up.ImageName
		image = &path
	}
	p := b.AddProduct(currentUserID(r), up.Fields["name"], up.Fields["description"], price, image)

	writeJSON(w, http.StatusCreated, map[string]any{"status": models.StatusSuccess, "message": "Product created successfully", "data": p})
}

func (b *Backend) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	up, errs, ok := b.readUpload(w, r)
	if !ok {
		return
	}
	if up.Fields["_method"] != http.MethodPut {
		writeMessage(w, http.StatusMethodNotAllowed, "The POST method is not supported for this route.")
		return
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, found := b.products[id]
	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if p.UserID != currentUserID(r) {
		writeMessage(w, http.StatusForbidden, "Unauthorized to update this product")
		return
	}

	price, _ := strconv.ParseFloat(up.Fields["price"], 64)
	p.Name = up.Fields["name"]
	p.Description = up.Fields["description"]
	p.Price = models.Price(price)
	if up.ImageName != "" {
		path := "products/" + up.ImageName
		p.Image = &path
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.UpdatedAt = &now
	b.products[id] = p

	writeJSON(w, http.StatusOK, map[string]any{"status": models.StatusSuccess, "message": "Product updated successfully", "data": p})
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, found := b.products[id]
	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if p.UserID != currentUserID(r) {
		writeMessage(w, http.StatusForbidden, "Unauthorized to delete this product")
		return
	}
	delete(b.products, id)

	writeJSON(w, http.StatusOK, models.StatusResponse{Status: models.StatusSuccess, Message: "Product deleted successfully"})
}

// readUpload разбирает multipart форму товара и валидирует поля.
func (b *Backend) readUpload(w http.ResponseWriter, r *http.Request) (*Upload, map[string][]string, bool) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeMessage(w, http.StatusBadRequest, "expected multipart/form-data")
		return nil, nil, false
	}

	up := &Upload{Fields: map[string]string{}}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			up.Fields[k] = v[0]
		}
	}
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "bad image")
			return nil, nil, false
		}
		defer f.Close()
		up.Image, _ = io.ReadAll(f)
		up.ImageName = filepath.Base(files[0].Filename)
	}

	b.mu.Lock()
	b.upload = up
	b.mu.Unlock()

	errs := map[string][]string{}
	if strings.TrimSpace(up.Fields["name"]) == "" {
		errs["name"] = append(errs["name"], "The name field is required.")
	}
	if strings.TrimSpace(up.Fields["description"]) == "" {
		errs["description"] = append(errs["description"], "The description field is required.")
	}
	if price, err := strconv.ParseFloat(up.Fields["price"], 64); err != nil || price <= 0 {
		errs["price"] = append(errs["price"], "The price must be greater than 0.")
	}
	return up, errs, true
}

func (b *Backend) attachOwnerLocked(p *models.Product) {
	if u, ok := b.userByIDLocked(p.UserID); ok {
		p.User = &models.ProductOwner{ID: u.ID, Name: u.Name, Email: u.Email}
	}
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return 0, false
	}
	return id, true
}
