package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/models"
)

// SigningKey — ключ подписи токенов поддельного бэкенда (HS256).
const SigningKey = "apitest-signing-key-0123456789abcdef"

// TokenTTL — срок жизни выдаваемых токенов.
const TokenTTL = time.Hour

type ctxKey string

const userIDKey ctxKey = "user_id"

// issueLocked подписывает JWT для пользователя и регистрирует его как действующий.
//
// jti уникален, поэтому refresh в пределах одной секунды даёт новый токен.
func (b *Backend) issueLocked(userID int64) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	t, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(SigningKey))
	if err != nil {
		panic(err)
	}
	b.tokens[t] = userID
	return t
}

// requireToken пропускает только запросы с действующим bearer токеном.
func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearer(r)

		b.mu.Lock()
		userID, ok := b.tokens[token]
		b.mu.Unlock()

		if token == "" || !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

func bearer(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
}

func authPayload(token string, u models.User) models.AuthResponse {
	return models.AuthResponse{
		Status:      models.StatusSuccess,
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(TokenTTL.Seconds()),
		User:        &u,
	}
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[req.Email]
	if !ok || a.password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, authPayload(b.issueLocked(a.user.ID), a.user))
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	errs := map[string][]string{}
	if req.Name == "" {
		errs["name"] = append(errs["name"], "The name field is required.")
	}
	if req.Email == "" {
		errs["email"] = append(errs["email"], "The email field is required.")
	} else if _, taken := b.accounts[req.Email]; taken {
		errs["email"] = append(errs["email"], "The email has already been taken.")
	}
	if len(req.Password) < 6 {
		errs["password"] = append(errs["password"], "The password must be at least 6 characters.")
	}
	if req.Password != req.PasswordConfirmation {
		errs["password"] = append(errs["password"], "The password confirmation does not match.")
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	u := b.addUserLocked(req.Name, req.Email, req.Password)
	writeJSON(w, http.StatusCreated, authPayload(b.issueLocked(u.ID), u))
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	delete(b.tokens, bearer(r))
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.StatusResponse{Status: models.StatusSuccess, Message: "Successfully logged out"})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	u, ok := b.userByIDLocked(currentUserID(r))
	b.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}
	writeJSON(w, http.StatusOK, models.MeResponse{Status: models.StatusSuccess, User: &u})
}

func (b *Backend) refresh(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	userID := currentUserID(r)
	delete(b.tokens, bearer(r))
	token := b.issueLocked(userID)

	writeJSON(w, http.StatusOK, models.AuthResponse{
		Status:      models.StatusSuccess,
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(TokenTTL.Seconds()),
	})
}
