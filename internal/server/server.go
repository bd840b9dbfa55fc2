// Package server hosts brandkit's HTTP surface: the operational endpoints,
// the middleware chain and whatever theme routes the caller mounts.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/version"
)

// ReadinessChecker reports why the server cannot take traffic yet, or nil.
type ReadinessChecker func(ctx context.Context) error

// SimpleRouteRegistrar mounts a component's handlers on the shared mux.
type SimpleRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

const (
	defaultRateLimit = 100
	defaultRateBurst = 200
)

// Options toggles optional server behaviour.
type Options struct {
	// DevMode serves Swagger UI at /swagger/.
	DevMode bool
	// ReadOnly rejects every theme mutation with 405.
	ReadOnly bool
	// RateLimit is the per-client request rate. Zero means 100 req/s.
	RateLimit float64
	// RateBurst is the per-client burst. Zero means 200.
	RateBurst int
}

func (o Options) withDefaults() Options {
	if o.RateLimit <= 0 {
		o.RateLimit = defaultRateLimit
	}
	if o.RateBurst <= 0 {
		o.RateBurst = defaultRateBurst
	}
	return o
}

// operationalPaths skip request logging and rate limiting.
var operationalPaths = []string{"/healthz", "/readyz", "/metrics"}

// Server serves the brandkit HTTP API and the preview dashboard.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	ready      ReadinessChecker
}

// New builds a server listening on addr. dashboard may be nil, in which case
// nothing is mounted at "/".
func New(addr string, logger *zap.Logger, ready ReadinessChecker, dashboard http.Handler, opts Options, routes ...SimpleRouteRegistrar) *Server {
	opts = opts.withDefaults()
	s := &Server{
		logger: logger,
		mux:    http.NewServeMux(),
		ready:  ready,
	}
	s.mount(dashboard, opts, routes)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           Chain(s.mux, s.middleware(opts)...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) mount(dashboard http.Handler, opts Options, routes []SimpleRouteRegistrar) {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /readyz", s.handleReadyz)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	for _, r := range routes {
		r.RegisterRoutes(s.mux)
	}

	if opts.DevMode {
		s.mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
		s.logger.Info("swagger UI enabled", zap.String("path", "/swagger/"))
	}

	// API paths never fall through to the dashboard.
	s.mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		NotFound(w, "no such endpoint", r.URL.Path)
	})
	if dashboard != nil {
		s.mux.Handle("/", dashboard)
	}
}

// middleware lists the chain outermost first.
func (s *Server) middleware(opts Options) []Middleware {
	mw := []Middleware{
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware,
		LoggingMiddleware(s.logger, operationalPaths),
		SecurityHeadersMiddleware,
		VersionHeaderMiddleware,
		RateLimitMiddleware(opts.RateLimit, opts.RateBurst, operationalPaths),
	}
	if opts.ReadOnly {
		s.logger.Info("read-only mode: theme changes are rejected")
		mw = append(mw, ReadOnlyMiddleware)
	}
	return mw
}

// Handler returns the mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.httpServer.Addr, err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status  string            `json:"status" example:"ok"`
	Service string            `json:"service" example:"brandkit"`
	Version map[string]string `json:"version"`
}

// handleHealth reports service status and build information.
//
//	@Summary		Health check
//	@Description	Returns service health status with version information.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: "brandkit",
		Version: version.Map(),
	})
}
