package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name   string
		detail any
		want   any
	}{
		{name: "string", detail: "boom", want: "boom"},
		{name: "nil", detail: nil, want: ""},
		{name: "string list joined", detail: []string{"first.", "second."}, want: "first. second."},
		{name: "any list joined", detail: []any{"a", 1}, want: "a 1"},
		{name: "empty list", detail: []any{}, want: ""},
		{
			name:   "field errors",
			detail: FieldErrors{"title": []string{"This field may not be blank."}},
			want:   map[string]any{"title": "This field may not be blank."},
		},
		{
			name: "nested map",
			detail: map[string]any{
				"address": map[string]any{"city": []any{"This field is required."}},
			},
			want: map[string]any{
				"address": map[string]any{"city": "This field is required."},
			},
		},
		{
			name: "list of maps merged",
			detail: []any{
				map[string]any{"a": []string{"x"}},
				map[string]any{"b": "y"},
			},
			want: map[string]any{"a": "x", "b": "y"},
		},
		{name: "error value", detail: errors.New("bad"), want: "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.detail))
		})
	}
}

func TestEnvelope(t *testing.T) {
	t.Run("single message", func(t *testing.T) {
		env := PermissionDenied().Envelope()
		assert.Equal(t, "You do not have permission to perform this action.", env.Message)
		assert.Nil(t, env.Errors)
	})

	t.Run("field errors", func(t *testing.T) {
		env := Validation(FieldErrors{"email": "Enter a valid email address."}).Envelope()
		assert.Equal(t, "Validation error", env.Message)
		assert.Equal(t, map[string]any{"email": "Enter a valid email address."}, env.Errors)
	})

	t.Run("code is carried", func(t *testing.T) {
		env := AuthenticationFailed("Token is invalid or expired", "token_not_valid", nil).Envelope()
		assert.Equal(t, "Token is invalid or expired", env.Message)
		assert.Equal(t, "token_not_valid", env.Code)
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantOK     bool
		wantStatus int
	}{
		{name: "api error", err: NotFound("Event"), wantOK: true, wantStatus: http.StatusNotFound},
		{name: "wrapped api error", err: fmt.Errorf("wrap: %w", PermissionDenied()), wantOK: true, wantStatus: http.StatusForbidden},
		{name: "record not found", err: fmt.Errorf("find: %w", gorm.ErrRecordNotFound), wantOK: true, wantStatus: http.StatusNotFound},
		{name: "duplicated key", err: gorm.ErrDuplicatedKey, wantOK: true, wantStatus: http.StatusBadRequest},
		{name: "fiber client error", err: fiber.ErrMethodNotAllowed, wantOK: true, wantStatus: http.StatusMethodNotAllowed},
		{name: "fiber server error", err: fiber.ErrInternalServerError, wantOK: false},
		{name: "unknown", err: errors.New("disk on fire"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantStatus, got.Status)
			}
		})
	}
}

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: Handler(zap.NewNop())})
	app.Get("/", handler)
	return app
}

func TestHandler_RendersEnvelope(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return Validation(FieldErrors{"title": []string{"This field may not be blank."}})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation error", body["message"])
	assert.Equal(t, map[string]any{"title": "This field may not be blank."}, body["errors"])
}

func TestHandler_SetsAuthAndRetryHeaders(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error { return NotAuthenticated() })
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, AuthRealm, resp.Header.Get("WWW-Authenticate"))

	app = newTestApp(func(c *fiber.Ctx) error { return Throttled(30) })
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get("Retry-After"))
}

func TestHandler_UnknownErrorIsPlain500(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error { return errors.New("unexpected") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Internal Server Error", string(body))
}
