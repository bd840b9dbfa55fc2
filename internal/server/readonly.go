package server

import "net/http"

// ReadOnlyMiddleware freezes every tenant's theme. Only GET, HEAD, and
// OPTIONS requests reach the handlers; other methods get a 405 problem
// response. WebSocket upgrades are GETs and keep working.
func ReadOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
		default:
			WriteProblem(w, Problem{
				Type:     ProblemTypeReadOnly,
				Title:    "Method Not Allowed",
				Status:   http.StatusMethodNotAllowed,
				Detail:   "server is read-only: theme changes are disabled",
				Instance: r.URL.Path,
			})
		}
	})
}
