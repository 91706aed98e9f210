// Package core provides the HTTP chassis for the relay: a chi router with
// the cross-cutting middleware chain (panic recovery, request correlation,
// structured request logging) applied before requests reach the feed handler.
package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"matchrelay/internal/config"
	"matchrelay/internal/metrics"
)

// defaultRedactedHeaders lists header names whose values are masked in request
// logs. The feed MAC is included: together with a logged body it would allow
// replaying a request.
var defaultRedactedHeaders = []string{
	"Authorization",
	"X-TBA-HMAC",
}

// Server bundles the router with the dependencies the middleware chain needs.
// Route registration happens through RouteRegistrars, populated by the
// application entry point; this indirection avoids import cycles between core
// and the handler packages.
type Server struct {
	Config *config.Config
	Logger *slog.Logger

	// RouteRegistrars are invoked by MountRoutes to attach domain handlers.
	RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer creates a Server. It fails fast on missing dependencies.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		router: chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler interface for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration in tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// MountRoutes registers the global middleware chain (strict order: recoverer
// outermost, then request ID so the logger can correlate), the domain
// handlers, and the operational endpoints.
func (s *Server) MountRoutes() {
	s.router.Use(s.Recoverer)
	s.router.Use(RequestIDMiddleware)
	s.router.Use(RequestLogger(s.Logger, defaultRedactedHeaders))

	for _, registrar := range s.RouteRegistrars {
		registrar(s.router)
	}

	s.router.Get("/health", s.HandleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())
}
