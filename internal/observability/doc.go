// Package observability provides logging and metrics support for the
// scholarly search service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for queries, provider searches, and reconciliation
//   - Context helpers for propagating request identifiers
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:     "info",
//	    Format:    "json",
//	    Output:    "stdout",
//	    AddSource: true,
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("search started")
//
// Add search context to a logger:
//
//	logger = observability.WithSearchContext(logger, query, source)
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("scholarly_search")
//
// Record metrics:
//
//	metrics.RecordSearchStarted("openalex")
//	metrics.RecordRecordsDiscovered("openalex", 42)
//	metrics.RecordDuplicatesMerged(3)
//
// # Context Helpers
//
// Store and retrieve request context:
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: API request identifier
//   - query: user's search query
//   - source: metadata provider (crossref, openalex, etc.)
//   - doi: record DOI
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
