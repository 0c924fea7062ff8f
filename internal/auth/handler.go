package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/server"
)

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// StatusResponse reports whether admin login is available.
type StatusResponse struct {
	Enabled bool `json:"enabled"`
}

// Handler serves the auth endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes registers the auth routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/status", h.handleStatus)
}

// handleLogin exchanges the admin password for a bearer token.
//
//	@Summary		Admin login
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Admin password"
//	@Success		200		{object}	Token
//	@Failure		400		{object}	server.Problem
//	@Failure		401		{object}	server.Problem
//	@Failure		503		{object}	server.Problem	"Admin access not configured"
//	@Router			/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil || req.Password == "" {
		server.BadRequest(w, "password is required", r.URL.Path)
		return
	}

	tok, err := h.svc.Login(req.Password)
	switch {
	case errors.Is(err, ErrDisabled):
		server.ServiceUnavailable(w, err.Error(), r.URL.Path)
	case errors.Is(err, ErrInvalidCredentials):
		server.Unauthorized(w, err.Error(), r.URL.Path)
	case err != nil:
		h.logger.Error("issue token", zap.Error(err))
		server.InternalError(w, "could not issue token", r.URL.Path)
	default:
		w.Header().Set("Cache-Control", "no-store")
		server.WriteJSON(w, http.StatusOK, tok)
	}
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, StatusResponse{Enabled: h.svc.Enabled()})
}
