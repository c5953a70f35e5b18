// Package main provides the entry point for the scholarly search service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/unischolar/scholarly-search-service/internal/config"
	"github.com/unischolar/scholarly-search-service/internal/observability"
	"github.com/unischolar/scholarly-search-service/internal/providers"
	"github.com/unischolar/scholarly-search-service/internal/providers/arxiv"
	"github.com/unischolar/scholarly-search-service/internal/providers/core"
	"github.com/unischolar/scholarly-search-service/internal/providers/crossref"
	"github.com/unischolar/scholarly-search-service/internal/providers/openalex"
	"github.com/unischolar/scholarly-search-service/internal/providers/semanticscholar"
	"github.com/unischolar/scholarly-search-service/internal/search"
	httpserver "github.com/unischolar/scholarly-search-service/internal/server/http"
)

// metricsNamespace prefixes all Prometheus metric names.
const metricsNamespace = "scholarly_search"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("scholarly-search-service starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics(metricsNamespace)

	// Build the provider registry. Registration order defines the
	// provider-group order of reconciliation input.
	registry := buildRegistry(cfg, logger)
	if len(registry.EnabledSources()) == 0 {
		return errors.New("no providers enabled")
	}

	searchService := search.NewService(registry, logger, metrics, search.Config{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Timeout:      cfg.Search.Timeout,
	})

	httpCfg := httpserver.Config{
		Address:         cfg.Server.HTTPAddress(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	httpSrv := httpserver.NewServer(httpCfg, searchService, registry, logger, metrics)

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Channel to collect server errors.
	errCh := make(chan error, 2)

	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			logger.Info().
				Str("address", metricsServer.Addr).
				Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	enabled := registry.EnabledSources()
	names := make([]string, 0, len(enabled))
	for _, source := range enabled {
		names = append(names, source.Name())
	}
	readyLog := logger.Info().
		Str("http_address", httpCfg.Address).
		Strs("providers", names)
	if metricsServer != nil {
		readyLog = readyLog.Str("metrics_address", metricsServer.Addr)
	}
	readyLog.Msg("scholarly-search-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down scholarly-search-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("scholarly-search-service shutdown complete")
	return nil
}

// buildRegistry constructs provider clients from configuration and registers
// them. Disabled providers are registered too so their state shows up in
// diagnostics; the registry skips them at search time.
func buildRegistry(cfg *config.Config, logger zerolog.Logger) *providers.Registry {
	registry := providers.NewRegistry()

	registry.Register(crossref.New(crossref.Config{
		BaseURL:    cfg.Providers.Crossref.BaseURL,
		Email:      cfg.Providers.Crossref.Email,
		Timeout:    cfg.Providers.Crossref.Timeout,
		RateLimit:  cfg.Providers.Crossref.RateLimit,
		MaxResults: cfg.Providers.Crossref.MaxResults,
		Enabled:    cfg.Providers.Crossref.Enabled,
	}))

	registry.Register(openalex.New(openalex.Config{
		BaseURL:    cfg.Providers.OpenAlex.BaseURL,
		Email:      cfg.Providers.OpenAlex.Email,
		Timeout:    cfg.Providers.OpenAlex.Timeout,
		RateLimit:  cfg.Providers.OpenAlex.RateLimit,
		MaxResults: cfg.Providers.OpenAlex.MaxResults,
		Enabled:    cfg.Providers.OpenAlex.Enabled,
	}))

	registry.Register(semanticscholar.New(semanticscholar.Config{
		BaseURL:    cfg.Providers.SemanticScholar.BaseURL,
		APIKey:     cfg.Providers.SemanticScholar.APIKey,
		Timeout:    cfg.Providers.SemanticScholar.Timeout,
		RateLimit:  cfg.Providers.SemanticScholar.RateLimit,
		MaxResults: cfg.Providers.SemanticScholar.MaxResults,
		Enabled:    cfg.Providers.SemanticScholar.Enabled,
	}))

	registry.Register(arxiv.New(arxiv.Config{
		BaseURL:    cfg.Providers.ArXiv.BaseURL,
		Timeout:    cfg.Providers.ArXiv.Timeout,
		RateLimit:  cfg.Providers.ArXiv.RateLimit,
		MaxResults: cfg.Providers.ArXiv.MaxResults,
		Enabled:    cfg.Providers.ArXiv.Enabled,
	}))

	registry.Register(core.New(core.Config{
		BaseURL:    cfg.Providers.CORE.BaseURL,
		APIKey:     cfg.Providers.CORE.APIKey,
		Timeout:    cfg.Providers.CORE.Timeout,
		RateLimit:  cfg.Providers.CORE.RateLimit,
		MaxResults: cfg.Providers.CORE.MaxResults,
		Enabled:    cfg.Providers.CORE.Enabled,
	}))

	for _, source := range registry.EnabledSources() {
		logger.Info().Str("provider", source.Name()).Msg("provider enabled")
	}

	return registry
}
