// Package apitest содержит поддельный REST бэкенд маркетплейса для тестов клиента.
//
// Backend поднимает httptest.Server с chi роутером под префиксом /api и
// реализует все эндпоинты, используемые клиентом: /auth/*, /products, /my-products.
// Данные хранятся в памяти. Каждый запрос записывается в журнал вызовов,
// а отдельные маршруты можно принудительно "сломать" через Fail.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// Prefix — префикс API на поддельном бэкенде.
const Prefix = "/api"

type account struct {
	user     models.User
	password string
}

type failure struct {
	status int
	body   string
}

// Upload — последняя принятая multipart форма товара.
type Upload struct {
	Fields    map[string]string
	ImageName string
	Image     []byte
}

// Backend — поддельный бэкенд.
type Backend struct {
	mu sync.Mutex

	accounts map[string]*account // по email
	tokens   map[string]int64    // token -> user id
	products map[int64]models.Product

	nextUserID    int64
	nextProductID int64

	calls    []string
	failures map[string]failure
	upload   *Upload

	srv *httptest.Server
}

// New запускает бэкенд и регистрирует его остановку в t.Cleanup.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		accounts: make(map[string]*account),
		tokens:   make(map[string]int64),
		products: make(map[int64]models.Product),
		failures: make(map[string]failure),
	}
	b.srv = httptest.NewServer(b.router())
	t.Cleanup(b.srv.Close)
	return b
}

// URL возвращает базовый адрес API (с префиксом /api).
func (b *Backend) URL() string {
	return b.srv.URL + Prefix
}

// Origin возвращает origin сервера без префикса API.
func (b *Backend) Origin() string {
	return b.srv.URL
}

// Close останавливает сервер раньше t.Cleanup (для имитации сетевой ошибки).
func (b *Backend) Close() {
	b.srv.Close()
}

// Calls возвращает журнал вызовов в виде "METHOD /path" (без префикса /api).
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.calls))
	copy(out, b.calls)
	return out
}

// CallCount считает вызовы "METHOD /path".
func (b *Backend) CallCount(call string) int {
	n := 0
	for _, c := range b.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// ResetCalls очищает журнал вызовов.
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// Fail заставляет вызов "METHOD /path" отвечать status с телом body.
func (b *Backend) Fail(call string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[call] = failure{status: status, body: body}
}

// LastUpload возвращает последнюю принятую multipart форму или nil.
func (b *Backend) LastUpload() *Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.upload
}

// AddUser создаёт аккаунт и возвращает пользователя.
func (b *Backend) AddUser(name, email, password string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(name, email, password)
}

// IssueToken выдаёт токен пользователю напрямую, минуя /auth/login.
func (b *Backend) IssueToken(userID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(userID)
}

// RevokeAll делает все выданные токены недействительными.
func (b *Backend) RevokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]int64)
}

// AddProduct добавляет товар владельцу ownerID.
func (b *Backend) AddProduct(ownerID int64, name, description string, price float64, image *string) models.Product {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextProductID++
	now := time.Now().UTC().Truncate(time.Second)
	p := models.Product{
		ID:          b.nextProductID,
		Name:        name,
		Description: description,
		Price:       models.Price(price),
		Image:       image,
		UserID:      ownerID,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	b.products[p.ID] = p
	return p
}

// Products возвращает все товары, отсортированные по ID.
func (b *Backend) Products() []models.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedLocked(func(models.Product) bool { return true })
}

// Product возвращает товар по ID.
func (b *Backend) Product(id int64) (models.Product, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.products[id]
	return p, ok
}

func (b *Backend) addUserLocked(name, email, password string) models.User {
	b.nextUserID++
	now := time.Now().UTC().Truncate(time.Second)
	u := models.User{
		ID:        b.nextUserID,
		Name:      name,
		Email:     email,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	b.accounts[email] = &account{user: u, password: password}
	return u
}

func (b *Backend) userByIDLocked(id int64) (models.User, bool) {
	for _, a := range b.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return models.User{}, false
}

func (b *Backend) sortedLocked(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(b.products))
	for _, p := range b.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.recordAndFail)

	r.Route(Prefix, func(r chi.Router) {
		// Публичные пути
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", b.login)
			r.Post("/register", b.register)
			// защищены пути
			r.With(b.requireToken).Post("/logout", b.logout)
			r.With(b.requireToken).Get("/me", b.me)
			r.With(b.requireToken).Post("/refresh", b.refresh)
		})
		r.Get("/products", b.listProducts)
		r.Get("/products/{id}", b.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(b.requireToken)
			r.Get("/my-products", b.myProducts)
			r.Post("/products", b.createProduct)
			r.Post("/products/{id}", b.updateProduct)
			r.Delete("/products/{id}", b.deleteProduct)
		})
	})
	return r
}

// recordAndFail пишет вызов в журнал и отвечает принудительной ошибкой, если она задана.
func (b *Backend) recordAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := fmt.Sprintf("%s %s", r.Method, strings.TrimPrefix(r.URL.Path, Prefix))

		b.mu.Lock()
		b.calls = append(b.calls, call)
		f, failing := b.failures[call]
		b.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": msg})
}

func writeValidation(w http.ResponseWriter, errs map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "The given data was invalid.",
		"errors":  errs,
	})
}
