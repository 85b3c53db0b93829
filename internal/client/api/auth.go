// В этом файле описаны методы клиента для работы с эндпоинтами аутентификации:
// регистрация, вход, выход, обновление токена и получение текущего пользователя.
package api

import (
	"context"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// Login выполняет вход продавца.
//
// Метод отправляет POST запрос на /auth/login и возвращает AuthResponse
// с access_token и user. В случае ошибки возвращает непустую ошибку и nil.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.PostJSON(ctx, "/auth/login", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register регистрирует новый аккаунт.
//
// Метод отправляет POST запрос на /auth/register. Ответ имеет ту же форму,
// что и у Login: бэкенд сразу аутентифицирует новый аккаунт.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.PostJSON(ctx, "/auth/register", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout просит бэкенд инвалидировать токен (POST /auth/logout).
func (c *Client) Logout(ctx context.Context, accessToken string) (*models.StatusResponse, error) {
	var resp models.StatusResponse
	if err := c.PostJSON(ctx, "/auth/logout", nil, &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me запрашивает текущего пользователя по токену (GET /auth/me).
func (c *Client) Me(ctx context.Context, accessToken string) (*models.MeResponse, error) {
	var resp models.MeResponse
	if err := c.GetJSON(ctx, "/auth/me", &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh обменивает текущий токен на новый (POST /auth/refresh).
func (c *Client) Refresh(ctx context.Context, accessToken string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.PostJSON(ctx, "/auth/refresh", nil, &resp, accessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}
