package catalog

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/server"
)

// FeaturedCount is how many products the home page grid shows.
const FeaturedCount = 8

// Handler serves the product catalog over HTTP.
type Handler struct {
	client *Client
	logger *zap.Logger
}

// NewHandler creates a catalog Handler.
func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// RegisterRoutes mounts the catalog endpoints. Literal paths are registered
// before the {id} wildcard.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/products", h.handleList)
	mux.HandleFunc("GET /api/v1/products/featured", h.handleFeatured)
	mux.HandleFunc("GET /api/v1/products/categories", h.handleCategories)
	mux.HandleFunc("GET /api/v1/products/category/{category}", h.handleByCategory)
	mux.HandleFunc("GET /api/v1/products/{id}", h.handleGet)
	mux.HandleFunc("DELETE /api/v1/products/cache", h.handleClearCache)
}

// handleList returns products, optionally limited and filtered.
//
//	GET /api/v1/products?limit=n&category=c
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		products []Product
		err      error
	)
	if raw := q.Get("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil {
			server.BadRequest(w, "limit must be an integer", r.URL.Path)
			return
		}
		products, err = h.client.LimitedProducts(r.Context(), limit)
	} else {
		products, err = h.client.Products(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, FilterByCategory(products, q.Get("category")))
}

// handleFeatured returns the home page cards.
func (h *Handler) handleFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.LimitedProducts(r.Context(), FeaturedCount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, Cards(products))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		server.BadRequest(w, "product id must be an integer", r.URL.Path)
		return
	}
	p, err := h.client.Product(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.client.Categories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, cats)
}

func (h *Handler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.ProductsByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.client.ClearCache(r.Context()); err != nil {
		h.logger.Error("catalog cache clear failed", zap.Error(err))
		server.InternalError(w, "failed to clear catalog cache", r.URL.Path)
		return
	}
	h.logger.Info("catalog cache cleared via API")
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps catalog error codes onto problem responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	path := r.URL.Path
	switch {
	case IsInvalidArgument(err):
		server.BadRequest(w, err.Error(), path)
	case IsInvalidDestination(err):
		h.logger.Error("catalog destination rejected", zap.Error(err))
		server.InternalError(w, "catalog is misconfigured", path)
	case IsTimeout(err):
		server.GatewayTimeout(w, "request timeout - please try again", path)
	case IsHTTPError(err) && StatusCode(err) == http.StatusNotFound:
		server.NotFound(w, "product not found", path)
	case IsHTTPError(err), IsTransportError(err):
		h.logger.Warn("catalog upstream failure", zap.String("path", path), zap.Error(err))
		server.BadGateway(w, err.Error(), path)
	default:
		h.logger.Error("unexpected catalog error", zap.Error(err))
		server.InternalError(w, "failed to load catalog", path)
	}
}
