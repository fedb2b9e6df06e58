package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtracker/internal/application"
	"jobtracker/internal/auth"
	"jobtracker/internal/dto"
	"jobtracker/internal/handlers"
	"jobtracker/internal/metrics"
	"jobtracker/internal/middleware"
	"jobtracker/internal/repository"
	"jobtracker/internal/routes"
)

// captureMailer records the last reset email instead of sending it.
type captureMailer struct {
	mu        sync.Mutex
	lastTo    string
	lastToken string
	sendErr   error
}

func (m *captureMailer) SendPasswordReset(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.lastTo = to
	m.lastToken = token
	return nil
}

func (m *captureMailer) last() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTo, m.lastToken
}

type testEnv struct {
	router http.Handler
	mailer *captureMailer
	issuer *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	tokens := repository.NewMemoryResetTokenRepository(users)
	apps := repository.NewMemoryApplicationRepository()

	logger := zap.NewNop()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	resetManager := auth.NewResetManager(tokens, time.Hour)
	mailer := &captureMailer{}

	// High enough to stay out of the way of the tests.
	rateLimiter := middleware.NewRateLimiter(60000, 10000)
	t.Cleanup(rateLimiter.Stop)

	router := routes.New(routes.Deps{
		Health:        handlers.NewHealthHandler(nil),
		Auth:          handlers.NewAuthHandler(users, issuer, logger),
		PasswordReset: handlers.NewPasswordResetHandler(users, resetManager, mailer, logger),
		Applications:  handlers.NewApplicationHandler(application.NewService(apps), logger),
		TokenIssuer:   issuer,
		RateLimiter:   rateLimiter,
		Metrics:       metrics.New(),
		Logger:        logger,
	})

	return &testEnv{router: router, mailer: mailer, issuer: issuer}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponse
	decodeBody(t, w, &resp)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
