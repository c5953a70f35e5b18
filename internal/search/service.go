// Package search orchestrates a scholarly metadata query end to end:
// provider fan-out, cross-source reconciliation, ranking, and citation
// rendering.
//
// The service never fails a query because providers fail. Provider errors
// are logged, counted, and reported in the per-provider status list; a
// query where every provider errored returns an empty result set.
package search

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/unischolar/scholarly-search-service/internal/citation"
	"github.com/unischolar/scholarly-search-service/internal/domain"
	"github.com/unischolar/scholarly-search-service/internal/observability"
	"github.com/unischolar/scholarly-search-service/internal/providers"
	"github.com/unischolar/scholarly-search-service/internal/reconcile"
)

// Config holds query handling settings for the service.
type Config struct {
	// DefaultLimit is the per-provider result limit applied when a request
	// does not specify one.
	DefaultLimit int

	// MaxLimit caps the per-provider limit a request may ask for.
	MaxLimit int

	// Timeout bounds the whole provider fan-out for one query.
	// Zero means no service-level timeout.
	Timeout time.Duration
}

// DefaultConfig returns the service defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 20,
		MaxLimit:     100,
		Timeout:      45 * time.Second,
	}
}

// Service coordinates provider searches and assembles the unified response.
type Service struct {
	registry *providers.Registry
	logger   zerolog.Logger
	metrics  *observability.Metrics
	config   Config
}

// NewService creates a search service over the given provider registry.
func NewService(registry *providers.Registry, logger zerolog.Logger, metrics *observability.Metrics, config Config) *Service {
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if config.MaxLimit < config.DefaultLimit {
		config.MaxLimit = DefaultConfig().MaxLimit
	}
	return &Service{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		config:   config,
	}
}

// RecordResult is one reconciled record with its rendered citations.
type RecordResult struct {
	domain.Record

	// Citations maps style name to the rendered citation string.
	Citations map[string]string `json:"citations"`
}

// ProviderStatus reports the outcome of one provider for a query.
type ProviderStatus struct {
	Source  domain.SourceType `json:"source"`
	Success bool              `json:"success"`
	Records int               `json:"records"`
	Error   string            `json:"error,omitempty"`
}

// Result is the aggregated response for one search query.
type Result struct {
	Query      string           `json:"query"`
	Results    []*RecordResult  `json:"results"`
	TotalFound int              `json:"total_found"`
	Providers  []ProviderStatus `json:"providers"`
}

// AuthorsResult is the aggregated response for one author lookup.
type AuthorsResult struct {
	Query      string               `json:"query"`
	Results    []*domain.Researcher `json:"results"`
	TotalFound int                  `json:"total_found"`
	Providers  []ProviderStatus     `json:"providers"`
}

// Search runs the query against every enabled provider, reconciles and
// ranks the combined records, and renders citations for each. A limit of
// zero uses the configured default; limits above the maximum are clamped.
func (s *Service) Search(ctx context.Context, query string, limit int) *Result {
	start := time.Now()
	limit = s.clampLimit(limit)

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	for _, source := range s.registry.EnabledSources() {
		s.metrics.RecordSearchStarted(string(source.SourceType()))
	}

	params := providers.SearchParams{Query: query, Limit: limit}
	providerResults := s.registry.SearchAll(ctx, params)

	statuses := make([]ProviderStatus, 0, len(providerResults))
	for _, pr := range providerResults {
		sourceLogger := observability.WithSearchContext(s.logger, query, string(pr.Source))

		if pr.Err != nil {
			s.metrics.RecordSearchFailed(string(pr.Source), time.Since(start).Seconds())
			sourceLogger.Warn().Err(pr.Err).Msg("provider search failed")
			statuses = append(statuses, ProviderStatus{
				Source: pr.Source,
				Error:  pr.Err.Error(),
			})
			continue
		}

		count := len(pr.Result.Records)
		s.metrics.RecordSearchCompleted(string(pr.Source), count, pr.Result.SearchDuration.Seconds())
		s.metrics.RecordRecordsDiscovered(string(pr.Source), count)
		sourceLogger.Info().
			Int("records", count).
			Int("total_results", pr.Result.TotalResults).
			Dur("duration", pr.Result.SearchDuration).
			Msg("provider search completed")
		statuses = append(statuses, ProviderStatus{
			Source:  pr.Source,
			Success: true,
			Records: count,
		})
	}

	raw := providers.Flatten(providerResults)
	merged := reconcile.Merge(raw)
	s.metrics.RecordDuplicatesMerged(len(raw) - len(merged))
	reconcile.Rank(merged)

	results := make([]*RecordResult, 0, len(merged))
	for _, record := range merged {
		results = append(results, &RecordResult{
			Record:    *record,
			Citations: citation.Render(record),
		})
	}

	s.metrics.RecordQueryCompleted(time.Since(start).Seconds())
	s.logger.Info().
		Str("query", query).
		Int("raw_records", len(raw)).
		Int("merged_records", len(merged)).
		Dur("duration", time.Since(start)).
		Msg("search query completed")

	return &Result{
		Query:      query,
		Results:    results,
		TotalFound: len(results),
		Providers:  statuses,
	}
}

// SearchAuthors runs an author lookup against every enabled provider that
// supports one. Researcher results are reported verbatim per provider in
// registration order; no cross-provider identity resolution is attempted.
func (s *Service) SearchAuthors(ctx context.Context, query string, limit int) *AuthorsResult {
	limit = s.clampLimit(limit)

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	params := providers.SearchParams{Query: query, Limit: limit}
	providerResults := s.registry.SearchAuthors(ctx, params)

	var researchers []*domain.Researcher
	statuses := make([]ProviderStatus, 0, len(providerResults))
	for _, ar := range providerResults {
		sourceLogger := observability.WithSearchContext(s.logger, query, string(ar.Source))
		s.metrics.RecordAuthorSearch(string(ar.Source))

		if ar.Err != nil {
			s.metrics.RecordAuthorSearchFailed(string(ar.Source))
			sourceLogger.Warn().Err(ar.Err).Msg("author search failed")
			statuses = append(statuses, ProviderStatus{
				Source: ar.Source,
				Error:  ar.Err.Error(),
			})
			continue
		}

		researchers = append(researchers, ar.Researchers...)
		sourceLogger.Info().Int("researchers", len(ar.Researchers)).Msg("author search completed")
		statuses = append(statuses, ProviderStatus{
			Source:  ar.Source,
			Success: true,
			Records: len(ar.Researchers),
		})
	}

	if researchers == nil {
		researchers = []*domain.Researcher{}
	}

	return &AuthorsResult{
		Query:      query,
		Results:    researchers,
		TotalFound: len(researchers),
		Providers:  statuses,
	}
}

// clampLimit resolves the effective per-provider limit for a request.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.config.DefaultLimit
	}
	if limit > s.config.MaxLimit {
		return s.config.MaxLimit
	}
	return limit
}
