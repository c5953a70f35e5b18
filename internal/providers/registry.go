package providers

import (
	"context"
	"sync"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// ProviderResult holds the outcome of a search against one provider.
// Exactly one of Result and Err is set, so callers can report per-provider
// health without losing the never-abort-the-request guarantee.
type ProviderResult struct {
	// Source identifies which provider produced the result.
	Source domain.SourceType

	// Result contains the search results if the search succeeded.
	Result *SearchResult

	// Err contains the error if the search failed.
	Err error
}

// Registry holds the configured provider sources and coordinates concurrent
// searches across them. The registry is constructed once per process and
// injected where needed; there is no ambient global adapter list.
//
// Registration order is significant: it defines the provider-group order of
// the flattened result sequence, which seeds reconciliation.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
	byType  map[domain.SourceType]Source
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[domain.SourceType]Source),
	}
}

// Register adds a source to the registry, appending it to the registration
// order. Registering a source type twice replaces the earlier source but
// keeps its position. Thread-safe.
func (r *Registry) Register(source Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[source.SourceType()]; ok {
		for i, s := range r.sources {
			if s.SourceType() == source.SourceType() {
				r.sources[i] = source
				break
			}
		}
	} else {
		r.sources = append(r.sources, source)
	}
	r.byType[source.SourceType()] = source
}

// Get returns a source by type, or nil if not registered. Thread-safe.
func (r *Registry) Get(sourceType domain.SourceType) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[sourceType]
}

// EnabledSources returns the enabled sources in registration order.
// The returned slice is a snapshot. Thread-safe.
func (r *Registry) EnabledSources() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]Source, 0, len(r.sources))
	for _, source := range r.sources {
		if source.IsEnabled() {
			sources = append(sources, source)
		}
	}
	return sources
}

// SearchAll searches all enabled sources concurrently with the same query
// and waits for every source to finish; no source short-circuits on another
// source's success or failure. Results are returned in registration order
// with errors included per provider. Thread-safe.
func (r *Registry) SearchAll(ctx context.Context, params SearchParams) []ProviderResult {
	sources := r.EnabledSources()
	if len(sources) == 0 {
		return nil
	}

	// One slot per source, filled by index so the output keeps
	// registration order regardless of completion order.
	results := make([]ProviderResult, len(sources))
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()

			result, err := s.Search(ctx, params)
			results[i] = ProviderResult{
				Source: s.SourceType(),
				Result: result,
				Err:    err,
			}
		}(i, source)
	}

	wg.Wait()
	return results
}

// SearchAuthors searches all enabled sources that support author lookup,
// concurrently, with the same wait-for-all contract as SearchAll.
func (r *Registry) SearchAuthors(ctx context.Context, params SearchParams) []AuthorResult {
	var sources []AuthorSource
	for _, source := range r.EnabledSources() {
		if as, ok := source.(AuthorSource); ok {
			sources = append(sources, as)
		}
	}
	if len(sources) == 0 {
		return nil
	}

	results := make([]AuthorResult, len(sources))
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, s AuthorSource) {
			defer wg.Done()

			researchers, err := s.SearchAuthors(ctx, params)
			results[i] = AuthorResult{
				Source:      s.SourceType(),
				Researchers: researchers,
				Err:         err,
			}
		}(i, source)
	}

	wg.Wait()
	return results
}

// AuthorResult holds the outcome of an author search against one provider.
type AuthorResult struct {
	Source      domain.SourceType
	Researchers []*domain.Researcher
	Err         error
}

// Flatten concatenates the per-provider records from successful results,
// preserving provider-group order (all of one provider's records before the
// next provider's). Failed providers contribute nothing. The result is the
// seed order for reconciliation.
func Flatten(results []ProviderResult) []*domain.Record {
	var records []*domain.Record
	for _, pr := range results {
		if pr.Err != nil || pr.Result == nil {
			continue
		}
		records = append(records, pr.Result.Records...)
	}
	return records
}
