package errors

import (
	"net/http"
	"sort"
	"strings"
)

// APIError — ответ бэкенда со статусом не 2xx.
//
// Бэкенд отдаёт тело вида:
//
//	{"message": "...", "errors": {"field": ["msg1", "msg2"]}}
//
// Поля:
//   - StatusCode: HTTP-статус ответа;
//   - Message: верхнеуровневое сообщение (может быть пустым);
//   - Errors: ошибки валидации по полям (может быть nil);
//   - Body: сырое тело ответа (trim пробелов), если JSON не распознан.
type APIError struct {
	StatusCode int                 `json:"-"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors"`
	Body       string              `json:"-"`
}

// Error возвращает message, иначе сырое тело, иначе текст HTTP-статуса.
func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Body != "":
		return e.Body
	default:
		return http.StatusText(e.StatusCode)
	}
}

// Is позволяет сравнивать APIError с ErrUnauthorized, ErrNotFound и ErrInternal через errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrInternal:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// HasFieldErrors сообщает, есть ли хотя бы одно сообщение об ошибке поля.
func (e *APIError) HasFieldErrors() bool {
	for _, msgs := range e.Errors {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// Flatten собирает все сообщения ошибок полей в один список.
//
// Поля обходятся в отсортированном порядке ключей, сообщения внутри поля
// сохраняют порядок бэкенда. Пустые строки пропускаются.
func (e *APIError) Flatten() []string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, msg := range e.Errors[k] {
			if msg = strings.TrimSpace(msg); msg != "" {
				out = append(out, msg)
			}
		}
	}
	return out
}
