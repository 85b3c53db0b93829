// Package session реализует хранилище сессии продавца в клиенте маркетплейса.
//
// Store держит bearer токен (в долговременном config.Storage) и снимок
// текущего пользователя (в observable ячейке с replay-last семантикой).
//
// Инвариант: текущий пользователь не nil только пока токен присутствует.
// Обратное не обязательно: токен может быть, а пользователь ещё не восстановлен
// (после перезапуска, до успешного FetchCurrentUser).
//
// Ошибки сети и бэкенда не выходят за пределы контракта: они возвращаются
// вызывающему как error (*errors.APIError или errors.ErrTransport), а решение
// о поведении UI принимает view.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/config"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/observable"
	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// AuthAPI — эндпоинты аутентификации, которые нужны Store. Реализуется *api.Client.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) (*models.StatusResponse, error)
	Me(ctx context.Context, accessToken string) (*models.MeResponse, error)
	Refresh(ctx context.Context, accessToken string) (*models.AuthResponse, error)
}

// Store — сессия текущего продавца.
type Store struct {
	api     AuthAPI
	storage config.Storage
	log     *logger.ClientLogger
	user    *observable.Value[*models.User]
}

// NewStore создаёт Store. log может быть nil.
func NewStore(api AuthAPI, storage config.Storage, log *logger.ClientLogger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		api:     api,
		storage: storage,
		log:     log,
		user:    observable.New[*models.User](nil),
	}
}

// Login отправляет учётные данные.
//
// При status=success сохраняет токен и публикует пользователя.
// При ошибке ничего не меняет и возвращает ошибку бэкенда как есть.
// Ответ 2xx с другим status возвращается без ошибки и без изменений:
// что считать успехом, решает вызывающий.
func (s *Store) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.log.Warn("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if err := s.authenticate(resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// Register регистрирует аккаунт с тем же контрактом, что и Login:
// успешная регистрация сразу аутентифицирует новый аккаунт.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.log.Warn("register failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	if err := s.authenticate(resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// authenticate сохраняет токен и публикует пользователя для успешного ответа.
func (s *Store) authenticate(resp *models.AuthResponse) error {
	if !resp.OK() {
		return nil
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: empty access_token in successful response", serr.ErrBadJSON)
	}
	if err := s.storage.Set(config.TokenKey, resp.AccessToken); err != nil {
		s.log.Error("save token", zap.Error(err))
		return fmt.Errorf("save token: %w", err)
	}
	s.user.Set(resp.User)
	return nil
}

// Logout просит бэкенд инвалидировать токен и ВСЕГДА очищает локальную сессию:
// токен удаляется, текущий пользователь становится nil, даже если сеть недоступна.
//
// Возвращаемая ошибка носит информационный характер (для логов/сообщений).
func (s *Store) Logout(ctx context.Context) error {
	var netErr error
	if token := s.Token(); token != "" {
		if _, err := s.api.Logout(ctx, token); err != nil {
			s.log.Warn("server logout failed, clearing local session anyway", zap.Error(err))
			netErr = err
		}
	}
	return errors.Join(netErr, s.clear())
}

// FetchCurrentUser спрашивает у бэкенда, кто аутентифицирован по сохранённому токену,
// и публикует результат.
//
// Без токена возвращает ErrNoToken, запрос не выполняется.
// Если бэкенд ответил 401, токен считается протухшим: сессия очищается.
func (s *Store) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	token := s.Token()
	if token == "" {
		return nil, serr.ErrNoToken
	}

	resp, err := s.api.Me(ctx, token)
	if err != nil {
		if errors.Is(err, serr.ErrUnauthorized) {
			s.log.Info("stored token rejected, clearing session", zap.Error(err))
			if clearErr := s.clear(); clearErr != nil {
				return nil, errors.Join(err, clearErr)
			}
		}
		return nil, err
	}
	if resp.Status != models.StatusSuccess || resp.User == nil {
		return nil, fmt.Errorf("%w: unexpected /auth/me response (status %q)", serr.ErrBadJSON, resp.Status)
	}

	s.user.Set(resp.User)
	return resp.User, nil
}

// Restore восстанавливает текущего пользователя при старте, если токен уже есть.
// Ошибки только логируются.
func (s *Store) Restore(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	if _, err := s.FetchCurrentUser(ctx); err != nil {
		s.log.Warn("session restore failed", zap.Error(err))
	}
}

// RefreshToken обменивает текущий токен на новый и сохраняет его при успехе.
func (s *Store) RefreshToken(ctx context.Context) (*models.AuthResponse, error) {
	token := s.Token()
	if token == "" {
		return nil, serr.ErrNoToken
	}

	resp, err := s.api.Refresh(ctx, token)
	if err != nil {
		s.log.Warn("refresh failed", zap.Error(err))
		return nil, err
	}
	if !resp.OK() {
		return resp, nil
	}
	if resp.AccessToken == "" {
		return resp, fmt.Errorf("%w: empty access_token in refresh response", serr.ErrBadJSON)
	}
	if err := s.storage.Set(config.TokenKey, resp.AccessToken); err != nil {
		s.log.Error("save refreshed token", zap.Error(err))
		return resp, fmt.Errorf("save token: %w", err)
	}
	if resp.User != nil {
		s.user.Set(resp.User)
	}
	return resp, nil
}

// IsAuthenticated истинно, если в хранилище есть токен.
//
// Валидность токена НЕ проверяется: это "локально считаем себя залогиненными",
// подтверждается только успешным FetchCurrentUser.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token возвращает сохранённый токен или пустую строку.
func (s *Store) Token() string {
	token, ok, err := s.storage.Get(config.TokenKey)
	if err != nil {
		s.log.Error("read token", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// CurrentUser возвращает последний опубликованный снимок пользователя.
func (s *Store) CurrentUser() *models.User {
	return s.user.Get()
}

// Subscribe подписывает fn на изменения текущего пользователя.
// fn сразу получает последнее значение.
func (s *Store) Subscribe(fn func(*models.User)) (unsubscribe func()) {
	return s.user.Subscribe(fn)
}

// clear удаляет токен и публикует nil. Пользователь публикуется nil даже
// при ошибке хранилища.
func (s *Store) clear() error {
	err := s.storage.Delete(config.TokenKey)
	if err != nil {
		s.log.Error("delete token", zap.Error(err))
	}
	s.user.Set(nil)
	return err
}
