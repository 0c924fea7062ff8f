// Package settings provides the HTTP endpoints for storefront settings,
// chiefly theme selection and the generated theme stylesheet.
package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/server"
	"github.com/HerbHall/storefront/internal/services"
	"github.com/HerbHall/storefront/internal/theme"
)

// ThemeSummary is one row of the theme list.
type ThemeSummary struct {
	ID     theme.ID `json:"id"`
	Name   string   `json:"name"`
	Marker string   `json:"marker"`
	Active bool     `json:"active"`
}

// ThemeDetail is a full catalog entry plus its flattened variables.
type ThemeDetail struct {
	theme.Theme
	Marker    string           `json:"marker"`
	Variables []theme.Variable `json:"variables"`
}

// ActiveThemeResponse describes the active theme.
type ActiveThemeResponse struct {
	ThemeID   theme.ID         `json:"theme_id"`
	Name      string           `json:"name"`
	Marker    string           `json:"marker"`
	Variables []theme.Variable `json:"variables"`
}

// ActiveThemeRequest selects a theme.
type ActiveThemeRequest struct {
	ThemeID string `json:"theme_id"`
}

// Handler serves settings endpoints.
type Handler struct {
	engine   *theme.Engine
	sheet    *theme.StyleSheet
	settings services.SettingsRepository
	logger   *zap.Logger
}

// NewHandler creates a settings Handler. sheet is the style sheet the engine
// propagates into; settings may be nil to hide the raw settings listing.
func NewHandler(engine *theme.Engine, sheet *theme.StyleSheet, settings services.SettingsRepository, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, sheet: sheet, settings: settings, logger: logger}
}

// RegisterRoutes registers settings routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/settings", h.handleListSettings)

	// Literal paths before the wildcard.
	mux.HandleFunc("GET /api/v1/settings/themes", h.handleListThemes)
	mux.HandleFunc("GET /api/v1/settings/themes/active", h.handleGetActiveTheme)
	mux.HandleFunc("PUT /api/v1/settings/themes/active", h.handleSetActiveTheme)
	mux.HandleFunc("GET /api/v1/settings/themes/{id}", h.handleGetTheme)

	mux.HandleFunc("GET /theme.css", h.handleStyleSheet)
}

// handleListSettings returns every persisted setting.
//
//	@Summary		List settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{array}		services.Setting
//	@Failure		500	{object}	server.Problem
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	if h.settings == nil {
		server.NotFound(w, "settings listing is disabled", r.URL.Path)
		return
	}
	all, err := h.settings.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list settings", zap.Error(err))
		server.InternalError(w, "failed to list settings", r.URL.Path)
		return
	}
	if all == nil {
		all = []services.Setting{}
	}
	server.WriteJSON(w, http.StatusOK, all)
}

// handleListThemes returns the catalog in display order.
//
//	@Summary		List themes
//	@Tags			settings
//	@Produce		json
//	@Success		200	{array}	ThemeSummary
//	@Router			/settings/themes [get]
func (h *Handler) handleListThemes(w http.ResponseWriter, _ *http.Request) {
	activeID, _ := h.engine.Active()
	themes := theme.Themes()
	out := make([]ThemeSummary, len(themes))
	for i, t := range themes {
		out[i] = ThemeSummary{
			ID:     t.ID,
			Name:   t.Name,
			Marker: theme.MarkerFor(t.ID),
			Active: t.ID == activeID,
		}
	}
	server.WriteJSON(w, http.StatusOK, out)
}

// handleGetTheme returns one catalog entry.
//
//	@Summary		Get theme
//	@Tags			settings
//	@Produce		json
//	@Param			id	path		string	true	"Theme ID"
//	@Success		200	{object}	ThemeDetail
//	@Failure		404	{object}	server.Problem
//	@Router			/settings/themes/{id} [get]
func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	id := theme.ID(r.PathValue("id"))
	t, ok := theme.Lookup(id)
	if !ok {
		server.NotFound(w, "theme not found: "+string(id), r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, ThemeDetail{
		Theme:     t,
		Marker:    theme.MarkerFor(id),
		Variables: theme.Variables(t),
	})
}

// handleGetActiveTheme returns the active theme.
//
//	@Summary		Get active theme
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	ActiveThemeResponse
//	@Router			/settings/themes/active [get]
func (h *Handler) handleGetActiveTheme(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, h.activeResponse())
}

// handleSetActiveTheme selects a theme. Unknown ids leave the selection
// unchanged and still answer 200 with the current theme.
//
//	@Summary		Select theme
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ActiveThemeRequest	true	"Theme to activate"
//	@Success		200		{object}	ActiveThemeResponse
//	@Failure		400		{object}	server.Problem
//	@Failure		500		{object}	server.Problem	"Theme applied but not saved"
//	@Router			/settings/themes/active [put]
func (h *Handler) handleSetActiveTheme(w http.ResponseWriter, r *http.Request) {
	var req ActiveThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}
	req.ThemeID = strings.TrimSpace(req.ThemeID)
	if req.ThemeID == "" {
		server.BadRequest(w, "theme_id is required", r.URL.Path)
		return
	}

	if err := h.engine.Select(r.Context(), theme.ID(req.ThemeID)); err != nil {
		h.logger.Error("theme applied but not saved",
			zap.String("theme_id", req.ThemeID), zap.Error(err))
		server.InternalError(w, "theme applied but could not be saved", r.URL.Path)
		return
	}

	server.WriteJSON(w, http.StatusOK, h.activeResponse())
}

// handleStyleSheet serves the active theme as CSS custom properties.
func (h *Handler) handleStyleSheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(h.sheet.CSS()))
}

func (h *Handler) activeResponse() ActiveThemeResponse {
	id, t := h.engine.Active()
	return ActiveThemeResponse{
		ThemeID:   id,
		Name:      t.Name,
		Marker:    theme.MarkerFor(id),
		Variables: theme.Variables(t),
	}
}
