// Package providers defines the provider adapter interface and the fan-out
// dispatcher for scholarly metadata sources.
//
// Each provider (Crossref, OpenAlex, Semantic Scholar, arXiv, CORE) implements
// the Source interface, translating its wire format into domain records. The
// Registry invokes all registered sources concurrently against the same query
// and reports a typed per-provider result, so one failing provider never
// aborts or delays the others.
package providers

import (
	"context"
	"time"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// SearchParams defines the parameters for a provider search.
type SearchParams struct {
	// Query is the free-text search query (required).
	Query string

	// Limit caps the number of records returned by a single provider.
	// A value of 0 uses the provider's configured default.
	Limit int
}

// SearchResult contains the records returned by one provider.
type SearchResult struct {
	// Records contains the normalized records, in provider-reported order.
	Records []*domain.Record

	// TotalResults is the total number of matches reported by the provider,
	// regardless of the limit. May be an estimate for large result sets.
	TotalResults int

	// Source identifies which provider produced these records.
	Source domain.SourceType

	// SearchDuration is the time taken to execute the search, including
	// network latency and response parsing.
	SearchDuration time.Duration
}

// Source is the interface every provider adapter implements.
type Source interface {
	// Search queries the provider for records matching the given parameters.
	// The context carries cancellation and deadline for the network call;
	// there is no timeout above the per-call one owned by the adapter.
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)

	// SourceType returns the type identifier for this provider.
	SourceType() domain.SourceType

	// Name returns a human-readable provider name for logging and display.
	Name() string

	// IsEnabled reports whether this provider is available for searches.
	// A provider may be disabled by configuration or a missing API key.
	IsEnabled() bool
}

// AuthorSource is implemented by providers that additionally support
// author lookup. Author search shares the error-swallowing contract of
// paper search but is outside the reconciliation core: researcher results
// are reported verbatim per provider.
type AuthorSource interface {
	Source

	// SearchAuthors queries the provider for researchers matching the query.
	SearchAuthors(ctx context.Context, params SearchParams) ([]*domain.Researcher, error)
}
