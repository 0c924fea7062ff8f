package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandler_ServesShell(t *testing.T) {
	if distFS == nil {
		t.Skip("built with the dev tag")
	}

	tests := []struct {
		name string
		path string
	}{
		{"root", "/"},
		{"products route", "/products"},
		{"contact route", "/contact"},
		{"nested route", "/products/12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)

			body := rec.Body.String()
			assert.Contains(t, body, `href="/theme.css"`)
			assert.Contains(t, body, `src="/assets/app.js"`)
		})
	}
}

func TestHandler_ServesAssets(t *testing.T) {
	if distFS == nil {
		t.Skip("built with the dev tag")
	}

	rec := serve(t, "/assets/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/ws/theme")

	rec = serve(t, "/assets/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "var(--color-primary")
}

func TestHandler_ExcludesReservedRoutes(t *testing.T) {
	paths := []string{
		"/api/v1/health",
		"/api/v1/products",
		"/api/v1/ws/theme",
		"/theme.css",
		"/healthz",
		"/readyz",
		"/metrics",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, serve(t, path).Code)
		})
	}
}
