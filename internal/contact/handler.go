package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/server"
)

// Handler serves the contact form endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a contact Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the contact routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/contact", h.handleSubmit)
	mux.HandleFunc("GET /api/v1/contact", h.handleList)
	mux.HandleFunc("GET /api/v1/contact/subjects", h.handleSubjects)
}

// handleSubmit stores a contact form submission.
//
//	@Summary		Submit the contact form
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			request	body		Request	true	"Form fields"
//	@Success		201		{object}	Submission
//	@Failure		400		{object}	server.Problem
//	@Failure		422		{object}	server.Problem	"Invalid fields"
//	@Router			/contact [post]
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}

	sub, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			server.ValidationFailed(w, ve.Fields, r.URL.Path)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			h.logger.Debug("contact submission abandoned", zap.Error(err))
		default:
			h.logger.Error("contact submission failed", zap.Error(err))
			server.InternalError(w, "failed to send message", r.URL.Path)
		}
		return
	}

	server.WriteJSON(w, http.StatusCreated, sub)
}

//	@Summary		List submissions
//	@Tags			contact
//	@Produce		json
//	@Success		200	{array}	Submission
//	@Security		BearerAuth
//	@Router			/contact [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list contact messages", zap.Error(err))
		server.InternalError(w, "failed to list messages", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, subs)
}

func (h *Handler) handleSubjects(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, Subjects)
}
