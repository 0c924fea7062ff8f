package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestMux(t *testing.T, enabled bool) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewHandler(newTestService(t, enabled), zaptest.NewLogger(t)).RegisterRoutes(mux)
	return mux
}

func postLogin(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleLogin(t *testing.T) {
	mux := newTestMux(t, true)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"password":"` + testPassword + `"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"password":"guess"}`, wantStatus: http.StatusUnauthorized},
		{name: "empty password", body: `{"password":""}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(t, mux, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
				return
			}

			var tok Token
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))
			assert.Equal(t, "Bearer", tok.TokenType)
			assert.NotEmpty(t, tok.AccessToken)
			assert.Equal(t, 60, tok.ExpiresIn)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestHandleLogin_Disabled(t *testing.T) {
	rec := postLogin(t, newTestMux(t, false), `{"password":"anything"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/status", http.NoBody)
		rec := httptest.NewRecorder()
		newTestMux(t, enabled).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got StatusResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, enabled, got.Enabled)
	}
}
