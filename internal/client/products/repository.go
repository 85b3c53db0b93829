// Package products реализует репозиторий товаров клиента маркетплейса.
//
// Repository тонкий: он только подставляет bearer токен текущей сессии в
// защищённые запросы и возвращает конверт бэкенда как есть. Поле status
// интерпретирует вызывающий. Права владельца проверяет бэкенд.
package products

import (
	"context"

	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// ProductAPI — эндпоинты товаров. Реализуется *api.Client.
type ProductAPI interface {
	ListProducts(ctx context.Context) (*models.ProductResponse, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error)
	MyProducts(ctx context.Context, accessToken string) (*models.ProductResponse, error)
	CreateProduct(ctx context.Context, accessToken string, in models.ProductInput) (*models.ProductResponse, error)
	UpdateProduct(ctx context.Context, accessToken string, id int64, in models.ProductInput) (*models.ProductResponse, error)
	DeleteProduct(ctx context.Context, accessToken string, id int64) (*models.ProductResponse, error)
}

// TokenSource отдаёт текущий bearer токен. Реализуется *session.Store.
type TokenSource interface {
	Token() string
}

// Repository — операции над каталогом товаров.
type Repository struct {
	api    ProductAPI
	tokens TokenSource
}

// NewRepository создаёт репозиторий.
func NewRepository(api ProductAPI, tokens TokenSource) *Repository {
	return &Repository{api: api, tokens: tokens}
}

// List возвращает все товары каталога.
func (r *Repository) List(ctx context.Context) (*models.ProductResponse, error) {
	return r.api.ListProducts(ctx)
}

// Get возвращает один товар.
func (r *Repository) Get(ctx context.Context, id int64) (*models.ProductResponse, error) {
	return r.api.GetProduct(ctx, id)
}

// ListMine возвращает товары текущего продавца.
func (r *Repository) ListMine(ctx context.Context) (*models.ProductResponse, error) {
	token, err := r.token()
	if err != nil {
		return nil, err
	}
	return r.api.MyProducts(ctx, token)
}

// Create создаёт товар.
func (r *Repository) Create(ctx context.Context, in models.ProductInput) (*models.ProductResponse, error) {
	token, err := r.token()
	if err != nil {
		return nil, err
	}
	return r.api.CreateProduct(ctx, token, in)
}

// Update полностью заменяет поля товара id.
func (r *Repository) Update(ctx context.Context, id int64, in models.ProductInput) (*models.ProductResponse, error) {
	token, err := r.token()
	if err != nil {
		return nil, err
	}
	return r.api.UpdateProduct(ctx, token, id, in)
}

// Delete удаляет товар id.
func (r *Repository) Delete(ctx context.Context, id int64) (*models.ProductResponse, error) {
	token, err := r.token()
	if err != nil {
		return nil, err
	}
	return r.api.DeleteProduct(ctx, token, id)
}

// token возвращает ErrNoToken, если сессии нет: запрос без токена бэкенд
// всё равно отклонит.
func (r *Repository) token() (string, error) {
	t := r.tokens.Token()
	if t == "" {
		return "", serr.ErrNoToken
	}
	return t, nil
}
