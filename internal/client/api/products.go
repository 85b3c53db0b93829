package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// ListProducts загружает все товары (публичный эндпоинт).
//
//	GET /products
func (c *Client) ListProducts(ctx context.Context) (*models.ProductResponse, error) {
	var resp models.ProductResponse
	if err := c.GetJSON(ctx, "/products", &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct загружает один товар по ID (публичный эндпоинт).
//
//	GET /products/{id}
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error) {
	var resp models.ProductResponse
	if err := c.GetJSON(ctx, fmt.Sprintf("/products/%d", id), &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyProducts загружает товары текущего продавца.
//
//	GET /my-products
//
// Владельца бэкенд определяет по bearer токену, фильтр клиент не передаёт.
func (c *Client) MyProducts(ctx context.Context, accessToken string) (*models.ProductResponse, error) {
	var resp models.ProductResponse
	if err := c.GetJSON(ctx, "/my-products", &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProduct создаёт товар.
//
//	POST /products (multipart: name, description, price, image?)
func (c *Client) CreateProduct(ctx context.Context, accessToken string, in models.ProductInput) (*models.ProductResponse, error) {
	var resp models.ProductResponse
	if err := c.PostMultipart(ctx, "/products", productFields(in), in.Image, &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProduct полностью заменяет name/description/price/image товара.
//
//	POST /products/{id} (multipart: ..., _method=PUT)
//
// Бэкенд принимает multipart только через POST, поэтому PUT-семантика
// передаётся полем _method.
func (c *Client) UpdateProduct(ctx context.Context, accessToken string, id int64, in models.ProductInput) (*models.ProductResponse, error) {
	fields := append(productFields(in), Field{Name: "_method", Value: "PUT"})

	var resp models.ProductResponse
	if err := c.PostMultipart(ctx, fmt.Sprintf("/products/%d", id), fields, in.Image, &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct удаляет товар по ID.
//
//	DELETE /products/{id}
//
// Если бэкенд ответил 204, возвращается пустой конверт и nil ошибка.
func (c *Client) DeleteProduct(ctx context.Context, accessToken string, id int64) (*models.ProductResponse, error) {
	var resp models.ProductResponse
	if err := c.DeleteJSON(ctx, fmt.Sprintf("/products/%d", id), &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

func productFields(in models.ProductInput) []Field {
	return []Field{
		{Name: "name", Value: in.Name},
		{Name: "description", Value: in.Description},
		{Name: "price", Value: strconv.FormatFloat(in.Price, 'f', -1, 64)},
	}
}
