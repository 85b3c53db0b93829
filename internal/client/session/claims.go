package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
)

// TokenInfo — данные из bearer токена, прочитанные БЕЗ проверки подписи.
//
// Только для отображения (команда status): клиент не знает ключа подписи,
// и эти данные никак не влияют на IsAuthenticated.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired сообщает, истёк ли токен относительно now. Нулевой ExpiresAt — не истёк.
func (i *TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// TokenClaims разбирает сохранённый токен как JWT без проверки подписи.
//
// Возвращает ErrNoToken, если токена нет, и ErrInvalidInput, если токен
// не является JWT (бэкенд вправе выдавать непрозрачные токены).
func (s *Store) TokenClaims() (*TokenInfo, error) {
	token := s.Token()
	if token == "" {
		return nil, serr.ErrNoToken
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: token is not a JWT: %v", serr.ErrInvalidInput, err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
