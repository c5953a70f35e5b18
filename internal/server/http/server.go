// Package httpserver provides the HTTP REST API server for the scholarly
// search service.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/unischolar/scholarly-search-service/internal/observability"
	"github.com/unischolar/scholarly-search-service/internal/providers"
	"github.com/unischolar/scholarly-search-service/internal/search"
)

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	search     *search.Service
	registry   *providers.Registry
	logger     zerolog.Logger
	metrics    *observability.Metrics
	validate   *validator.Validate
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	searchService *search.Service,
	registry *providers.Registry,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Server {
	s := &Server{
		search:   searchService,
		registry: registry,
		logger:   logger.With().Str("component", "http-server").Logger(),
		metrics:  metrics,
		validate: validator.New(),
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(jsonContentTypeMiddleware)
	if s.metrics != nil {
		r.Use(metricsMiddleware(s.metrics))
	}

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/authors", s.handleSearchAuthors)
	})

	return r
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports readiness. The service can serve queries as long
// as at least one provider is enabled; there is no database or broker to
// wait on.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	enabled := s.registry.EnabledSources()
	if len(enabled) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"error":  "no providers enabled",
		})
		return
	}

	names := make([]string, 0, len(enabled))
	for _, source := range enabled {
		names = append(names, string(source.SourceType()))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"providers": names,
	})
}
