package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "storefront-admin"

func newTestService(t *testing.T, enabled bool) *Service {
	t.Helper()
	cfg := Config{JWTSecret: "test-secret", TokenTTL: time.Minute}
	if enabled {
		hash, err := HashPassword(testPassword, bcrypt.MinCost)
		require.NoError(t, err)
		cfg.AdminPasswordHash = hash
	}
	svc, err := NewService(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return svc
}

func guarded(t *testing.T, svc *Service) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := ClaimsFromContext(r.Context()); c != nil {
			w.Header().Set("X-Role", c.Role)
		}
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(svc, AdminRoutes)(next)
}

func TestMiddleware(t *testing.T) {
	svc := newTestService(t, true)
	tok, err := svc.Login(testPassword)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantRole   string
	}{
		{name: "public route", method: http.MethodGet, path: "/api/v1/products", wantStatus: http.StatusOK},
		{name: "same path other method", method: http.MethodPost, path: "/api/v1/contact", wantStatus: http.StatusOK},
		{name: "missing header", method: http.MethodGet, path: "/api/v1/contact", wantStatus: http.StatusUnauthorized},
		{name: "head without token", method: http.MethodHead, path: "/api/v1/contact", wantStatus: http.StatusUnauthorized},
		{name: "head settings without token", method: http.MethodHead, path: "/api/v1/settings", wantStatus: http.StatusUnauthorized},
		{name: "head with token", method: http.MethodHead, path: "/api/v1/settings", header: "Bearer " + tok.AccessToken, wantStatus: http.StatusOK, wantRole: "admin"},
		{name: "basic scheme", method: http.MethodGet, path: "/api/v1/contact", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodDelete, path: "/api/v1/products/cache", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", method: http.MethodGet, path: "/api/v1/contact", header: "Bearer " + tok.AccessToken, wantStatus: http.StatusOK, wantRole: "admin"},
		{name: "valid token on settings", method: http.MethodGet, path: "/api/v1/settings", header: "Bearer " + tok.AccessToken, wantStatus: http.StatusOK, wantRole: "admin"},
	}

	h := guarded(t, svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	h := guarded(t, newTestService(t, false))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact", http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
