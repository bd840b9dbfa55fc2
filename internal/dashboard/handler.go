// Package dashboard serves the embedded theme preview page and the
// browser-side runtime applier.
package dashboard

import (
	"net/http"
	"strings"
)

// Handler returns an http.Handler that serves the embedded preview page.
// Paths that are not static files fall back to index.html, so
// /preview/anything still loads the page.
func Handler() http.Handler {
	subFS, err := assets()
	if err != nil {
		msg := "preview page unavailable: " + err.Error()
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, msg, http.StatusNotFound)
		})
	}

	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Operational and API paths belong to the server mux.
		if strings.HasPrefix(r.URL.Path, "/api/") ||
			r.URL.Path == "/healthz" ||
			r.URL.Path == "/readyz" ||
			r.URL.Path == "/metrics" {
			http.NotFound(w, r)
			return
		}

		path := r.URL.Path
		if path == "/" {
			path = "/index.html"
		}

		// The applier must never run stale against a newer API.
		if path == "/applier.js" {
			w.Header().Set("Cache-Control", "no-cache")
		}

		f, err := subFS.Open(strings.TrimPrefix(path, "/"))
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}

		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
