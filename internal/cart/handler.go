package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/catalog"
	"github.com/HerbHall/storefront/internal/server"
)

// AddItemRequest is the body of POST /api/v1/carts/{id}/items.
type AddItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Handler serves cart endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a cart Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the cart routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/carts", h.handleCreate)
	mux.HandleFunc("GET /api/v1/carts/{id}", h.handleGet)
	mux.HandleFunc("POST /api/v1/carts/{id}/items", h.handleAdd)
	mux.HandleFunc("DELETE /api/v1/carts/{id}/items/{product_id}", h.handleRemove)
}

//	@Summary		Create cart
//	@Tags			cart
//	@Produce		json
//	@Success		201	{object}	Cart
//	@Router			/carts [post]
func (h *Handler) handleCreate(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusCreated, h.svc.Create())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, c)
}

// handleAdd adds quantity of a product, merging with an existing line.
//
//	@Summary		Add item
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Cart ID"
//	@Param			request	body		AddItemRequest	true	"Product and quantity"
//	@Success		200		{object}	Cart
//	@Failure		400		{object}	server.Problem
//	@Failure		404		{object}	server.Problem
//	@Router			/carts/{id}/items [post]
func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	c, err := h.svc.Add(r.Context(), r.PathValue("id"), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("product_id"))
	if err != nil {
		server.BadRequest(w, "product_id must be an integer", r.URL.Path)
		return
	}
	c, err := h.svc.Remove(r.PathValue("id"), productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	path := r.URL.Path
	switch {
	case errors.Is(err, ErrCartNotFound), errors.Is(err, ErrItemNotFound), errors.Is(err, ErrProductNotFound):
		server.NotFound(w, err.Error(), path)
	case errors.Is(err, ErrInvalidQuantity), catalog.IsInvalidArgument(err):
		server.BadRequest(w, err.Error(), path)
	case catalog.IsHTTPError(err) && catalog.StatusCode(err) == http.StatusNotFound:
		server.NotFound(w, "product not found", path)
	case catalog.IsTimeout(err):
		server.GatewayTimeout(w, "catalog timed out", path)
	case catalog.IsHTTPError(err), catalog.IsTransportError(err):
		server.BadGateway(w, "catalog unavailable", path)
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		server.InternalError(w, "cart operation failed", path)
	}
}
