package tests

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	serr "github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/errors"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *serr.APIError
		want string
	}{
		{"message", &serr.APIError{StatusCode: 400, Message: "bad", Body: "raw"}, "bad"},
		{"body", &serr.APIError{StatusCode: 502, Body: "gateway down"}, "gateway down"},
		{"status text", &serr.APIError{StatusCode: http.StatusForbidden}, "Forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	wrapped := func(code int) error {
		return fmt.Errorf("call: %w", &serr.APIError{StatusCode: code})
	}

	assert.True(t, errors.Is(wrapped(http.StatusUnauthorized), serr.ErrUnauthorized))
	assert.True(t, errors.Is(wrapped(http.StatusNotFound), serr.ErrNotFound))
	assert.True(t, errors.Is(wrapped(http.StatusServiceUnavailable), serr.ErrInternal))

	assert.False(t, errors.Is(wrapped(http.StatusUnprocessableEntity), serr.ErrUnauthorized))
	assert.False(t, errors.Is(wrapped(http.StatusNotFound), serr.ErrInternal))
}

func TestAPIError_Flatten(t *testing.T) {
	e := &serr.APIError{Errors: map[string][]string{
		"price": {"The price must be greater than 0."},
		"email": {"The email has already been taken.", " "},
		"name":  nil,
	}}

	assert.True(t, e.HasFieldErrors())
	assert.Equal(t, []string{"The email has already been taken.", "The price must be greater than 0."}, e.Flatten())
	assert.False(t, (&serr.APIError{Errors: map[string][]string{"name": {}}}).HasFieldErrors())
}
