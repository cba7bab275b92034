package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/config"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/testutil"
	"github.com/jointoit/events-api/pkg/email"
	jwtPkg "github.com/jointoit/events-api/pkg/jwt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "test-secret-test-secret-test-secret"

type fakeNotifier struct {
	sent chan email.Registration
}

func (f *fakeNotifier) SendRegistrationConfirmation(_ context.Context, reg email.Registration) error {
	f.sent <- reg
	return nil
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	tokens   *jwtPkg.Manager
	notifier *fakeNotifier
}

func testConfig() *config.Config {
	cfg := &config.Config{
		AppEnv:             config.EnvDevelopment,
		Port:               "0",
		PublicBaseURL:      "http://events.test",
		CORSAllowedOrigins: "*",
	}
	cfg.Database.Driver = "sqlite"
	cfg.Database.URL = ":memory:"
	cfg.JWT.Secret = testSecret
	cfg.JWT.AccessTTL = time.Hour
	cfg.JWT.RefreshTTL = 24 * time.Hour
	cfg.TokenRateLimit.Max = 1000
	cfg.TokenRateLimit.Window = time.Minute
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	return cfg
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	notifier := &fakeNotifier{sent: make(chan email.Registration, 16)}

	app, err := New(Dependencies{
		Config:   cfg,
		DB:       db,
		Logger:   zap.NewNop(),
		Notifier: notifier,
	})
	require.NoError(t, err)

	tokens, err := jwtPkg.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	require.NoError(t, err)

	return &testEnv{app: app, db: db, tokens: tokens, notifier: notifier}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithConfig(t, testConfig())
}

// accessToken returns a bearer token for user.
func (e *testEnv) accessToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.tokens.IssueAccess(user.ID)
	require.NoError(t, err)
	return token
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) object(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.body, &out), "body: %s", r.body)
	return out
}

func (r response) list(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(r.body, &out), "body: %s", r.body)
	return out
}

// do sends a request. body may be nil, a raw string or a value encoded as
// JSON; token, when set, is sent as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return e.send(t, req)
}

func newRawRequest(method, path, body, contentType string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, contentType)
	return req
}

func (e *testEnv) send(t *testing.T, req *http.Request) response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: data}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
