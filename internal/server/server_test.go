package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubRoutes struct{}

func (stubRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/stub", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
}

func newTestServer(t *testing.T, ready ReadinessChecker, dashboard http.Handler) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", Port: 0, RateLimit: 1000, RateBurst: 1000}
	return New(cfg, zaptest.NewLogger(t), ready, nil, dashboard, stubRoutes{})
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandleHealthz(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := serve(t, srv.mux, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", decodeMap(t, rec)["status"])
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		ready      ReadinessChecker
		wantStatus int
		wantBody   string
	}{
		{name: "nil checker", wantStatus: http.StatusOK, wantBody: "ready"},
		{
			name:       "healthy",
			ready:      func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
			wantBody:   "ready",
		},
		{
			name:       "unhealthy",
			ready:      func(context.Context) error { return errors.New("database unreachable") },
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "not ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.ready, nil)
			rec := serve(t, srv.mux, http.MethodGet, "/readyz")

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeMap(t, rec)
			assert.Equal(t, tt.wantBody, body["status"])
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, body["error"], "database unreachable")
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := serve(t, srv.mux, http.MethodGet, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "storefront", body["service"])
	assert.NotNil(t, body["version"])
}

func TestHandleMetrics(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := serve(t, srv.mux, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRegistrarRoutes_Mounted(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := serve(t, srv.Handler(), http.MethodPost, "/api/v1/stub")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestDashboard_CatchAll(t *testing.T) {
	dash := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("dashboard"))
	})
	srv := newTestServer(t, nil, dash)

	rec := serve(t, srv.Handler(), http.MethodGet, "/some/page")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dashboard", rec.Body.String())

	// Specific routes still win over the catch-all.
	rec = serve(t, srv.Handler(), http.MethodGet, "/healthz")
	assert.Equal(t, "alive", decodeMap(t, rec)["status"])
}

func TestMiddlewareChain_Integration(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := serve(t, srv.Handler(), http.MethodGet, "/healthz")

	assert.NotEmpty(t, rec.Header().Get("X-Storefront-Version"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestNew_DefaultsRateLimit(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Port: 8080}, zaptest.NewLogger(t), nil, nil, nil)

	assert.Equal(t, "127.0.0.1:8080", srv.httpServer.Addr)
	for i := 0; i < 50; i++ {
		rec := serve(t, srv.Handler(), http.MethodGet, "/api/v1/health")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestSwaggerUI_DevModeOnly(t *testing.T) {
	tests := []struct {
		name    string
		devMode bool
		want    int
	}{
		{name: "dev mode", devMode: true, want: http.StatusOK},
		{name: "production", devMode: false, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: "127.0.0.1", RateLimit: 1000, RateBurst: 1000, DevMode: tt.devMode}
			srv := New(cfg, zaptest.NewLogger(t), nil, nil, nil)

			rec := serve(t, srv.Handler(), http.MethodGet, "/swagger/index.html")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_RunsInsideChain(t *testing.T) {
	deny := Middleware(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/v1/stub" {
				Unauthorized(w, "denied", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	cfg := Config{Host: "127.0.0.1", RateLimit: 1000, RateBurst: 1000}
	srv := New(cfg, zaptest.NewLogger(t), nil, deny, nil, stubRoutes{})

	rec := serve(t, srv.Handler(), http.MethodPost, "/api/v1/stub")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	// Outer middleware still ran.
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = serve(t, srv.Handler(), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
