package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func do(mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestCartEndpoints(t *testing.T) {
	svc := NewService(newFake(), zap.NewNop())
	mux := http.NewServeMux()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(mux)

	w := do(mux, http.MethodPost, "/api/v1/carts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var c Cart
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	require.NotEmpty(t, c.ID)

	w = do(mux, http.MethodPost, "/api/v1/carts/"+c.ID+"/items", AddItemRequest{ProductID: 2})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity, "quantity defaults to 1")

	w = do(mux, http.MethodGet, "/api/v1/carts/"+c.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(mux, http.MethodDelete, "/api/v1/carts/"+c.ID+"/items/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.Empty(t, c.Items)
}

func TestCartEndpoints_Errors(t *testing.T) {
	svc := NewService(newFake(), zap.NewNop())
	mux := http.NewServeMux()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	c := svc.Create()
	_, _ = svc.Add(context.Background(), c.ID, 1, 1)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown cart", http.MethodGet, "/api/v1/carts/nope", nil, http.StatusNotFound},
		{"unknown product", http.MethodPost, "/api/v1/carts/" + c.ID + "/items", AddItemRequest{ProductID: 77}, http.StatusNotFound},
		{"bad quantity", http.MethodPost, "/api/v1/carts/" + c.ID + "/items", AddItemRequest{ProductID: 1, Quantity: -3}, http.StatusBadRequest},
		{"bad product id", http.MethodDelete, "/api/v1/carts/" + c.ID + "/items/abc", nil, http.StatusBadRequest},
		{"item not in cart", http.MethodDelete, "/api/v1/carts/" + c.ID + "/items/2", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(mux, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
