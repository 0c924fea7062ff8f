package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/HerbHall/storefront/internal/server"
)

// Route is a method and exact path that requires an admin token.
type Route struct {
	Method string
	Path   string
}

// AdminRoutes are the operator-only endpoints.
var AdminRoutes = []Route{
	{http.MethodGet, "/api/v1/settings"},
	{http.MethodGet, "/api/v1/contact"},
	{http.MethodDelete, "/api/v1/products/cache"},
}

type claimsKey struct{}

// ClaimsFromContext returns the admin claims, or nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(claimsKey{}).(*Claims); ok {
		return c
	}
	return nil
}

// Middleware requires a valid bearer token on routes and passes every other
// request through untouched.
func Middleware(svc *Service, routes []Route) server.Middleware {
	protected := make(map[Route]bool, len(routes))
	for _, r := range routes {
		protected[r] = true
		// GET patterns on the mux also answer HEAD.
		if r.Method == http.MethodGet {
			protected[Route{http.MethodHead, r.Path}] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !protected[Route{r.Method, r.URL.Path}] {
				next.ServeHTTP(w, r)
				return
			}
			if !svc.Enabled() {
				server.ServiceUnavailable(w, ErrDisabled.Error(), r.URL.Path)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="storefront"`)
				server.Unauthorized(w, "missing or invalid authorization header", r.URL.Path)
				return
			}
			claims, err := svc.Authenticate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="storefront", error="invalid_token"`)
				server.Unauthorized(w, "invalid or expired access token", r.URL.Path)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}
