package models

// LoginRequest — тело запроса POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest — тело запроса POST /auth/register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthResponse — ответ login/register/refresh.
//
// AccessToken — непрозрачный bearer токен, сохраняется в хранилище.
// User приходит на login/register, на refresh может отсутствовать.
type AuthResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user,omitempty"`
	Message     string `json:"message,omitempty"`
}

// OK сообщает, что Status == "success".
func (r *AuthResponse) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// MeResponse — ответ GET /auth/me.
type MeResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user,omitempty"`
}

// StatusResponse — ответ без полезных данных (logout).
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
