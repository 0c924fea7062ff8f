// Package dashboard serves the embedded storefront page.
package dashboard

import (
	"io/fs"
	"net/http"
	"strings"
)

// reserved paths belong to the API mux, never to the page.
var reserved = []string{"/healthz", "/readyz", "/metrics", "/theme.css"}

// Handler serves the storefront shell. Unknown paths fall back to
// index.html so client-side navigation (/products, /contact) works on reload.
func Handler() http.Handler {
	if distFS == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "dashboard not available (dev mode)", http.StatusNotFound)
		})
	}

	subFS, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("dashboard: failed to create sub filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isReserved(r.URL.Path) {
			http.NotFound(w, r)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if f, err := subFS.Open(path); err == nil {
				f.Close()
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		// The shell must pick up theme changes on reload.
		w.Header().Set("Cache-Control", "no-cache")
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}

func isReserved(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return true
	}
	for _, p := range reserved {
		if path == p {
			return true
		}
	}
	return false
}
