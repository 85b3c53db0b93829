// Package api содержит HTTP-клиент для взаимодействия с REST бэкендом маркетплейса.
//
// Клиент инкапсулирует базовый URL API и настроенный http.Client,
// предоставляя методы для отправки JSON и multipart запросов (GET/POST/DELETE)
// с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - Всегда добавляются заголовки Accept: application/json и X-Request-ID.
//   - Content-Type выставляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *errors.APIError с разобранными
//     message/errors, если тело — JSON, и сырым телом в любом случае.
//   - Сетевые ошибки оборачиваются в errors.ErrTransport.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
)

// RequestIDHeader — заголовок с идентификатором запроса, попадает в лог клиента.
const RequestIDHeader = "X-Request-ID"

// Client реализует HTTP-клиент REST API маркетплейса.
//
// Поля:
//   - baseURL: базовый адрес API без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт, TLS).
//   - log: логгер исходящих запросов.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.ClientLogger
}

// Option настраивает Client при создании.
type Option func(*Client)

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithInsecureTLS отключает проверку TLS сертификата. Только для dev.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // только для dev
		}
	}
}

// WithLogger подключает логгер запросов.
func WithLogger(l *logger.ClientLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient подменяет http.Client целиком (например, httptest TLS клиент).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient создаёт новый HTTP-клиент.
//
// Параметры:
//   - baseURL: базовый адрес API (например: "http://127.0.0.1:8000/api").
//
// По умолчанию таймаут 10 секунд, логгер — no-op.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает нормализованный базовый адрес.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// readAPIError читает тело ответа сервера и возвращает *APIError.
//
// Поведение:
//   - читает res.Body полностью;
//   - пытается разобрать {"message": ..., "errors": {...}};
//   - сохраняет сырое тело (trim пробелов) для случаев, когда это не JSON.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)
	apiErr := &serr.APIError{
		StatusCode: res.StatusCode,
		Body:       strings.TrimSpace(string(raw)),
	}
	if len(raw) > 0 {
		// не JSON — не страшно, остаётся Body
		_ = json.Unmarshal(raw, apiErr)
	}
	return apiErr
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil — функция ничего не делает и возвращает nil.
// Если тело ответа пустое и json.Decoder вернул io.EOF, это НЕ считается ошибкой.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", serr.ErrBadJSON, err)
	}
	return nil
}

// do отправляет подготовленный запрос и обрабатывает ответ.
//
// Обработка ответа:
//   - 2xx: успех; 204 — без декодирования; прочие — JSON в resp (EOF не ошибка)
//   - не 2xx: *APIError
//   - ошибка сети: ErrTransport
func (c *Client) do(r *http.Request, resp any, authToken string) error {
	requestID := uuid.NewString()
	r.Header.Set("Accept", "application/json")
	r.Header.Set(RequestIDHeader, requestID)
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	start := time.Now()
	res, err := c.http.Do(r)
	duration := time.Since(start).Seconds() * 1000
	if err != nil {
		c.log.LogRequest(r.Method, r.URL.RequestURI(), requestID, 0, duration)
		return fmt.Errorf("%w: %v", serr.ErrTransport, err)
	}
	defer res.Body.Close()
	c.log.LogRequest(r.Method, r.URL.RequestURI(), requestID, res.StatusCode, duration)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
//
// Если req == nil, тело не отправляется и Content-Type не устанавливается.
// Если resp == nil, тело ответа не декодируется.
// Если authToken непустой, добавляется заголовок Authorization: Bearer <token>.
func (c *Client) PostJSON(ctx context.Context, path string, req any, resp any, authToken string) error {
	var buf bytes.Buffer
	if req != nil {
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return c.do(r, resp, authToken)
}

// GetJSON выполняет GET-запрос и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(ctx context.Context, path string, resp any, authToken string) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(r, resp, authToken)
}

// DeleteJSON выполняет DELETE-запрос и (опционально) декодирует JSON-ответ.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any, authToken string) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(r, resp, authToken)
}
