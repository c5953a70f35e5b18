package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the scholarly search service.
// Metrics are organized by subsystem: queries, per-provider searches,
// reconciliation, and the HTTP surface. All counters and histograms are
// registered via promauto for automatic registration with the default
// Prometheus registry.
type Metrics struct {
	// QueriesTotal counts aggregated search queries handled.
	QueriesTotal prometheus.Counter

	// QueryDuration observes the end-to-end duration of aggregated
	// queries in seconds, from dispatch to rendered response.
	QueryDuration prometheus.Histogram

	// SearchesStarted counts provider searches initiated, labeled by source.
	SearchesStarted *prometheus.CounterVec

	// SearchesCompleted counts successful provider searches, labeled by source.
	SearchesCompleted *prometheus.CounterVec

	// SearchesFailed counts failed provider searches, labeled by source.
	SearchesFailed *prometheus.CounterVec

	// SearchDuration observes provider search duration in seconds, labeled by source.
	SearchDuration *prometheus.HistogramVec

	// RecordsPerSearch observes the distribution of records returned per
	// provider search, labeled by source.
	RecordsPerSearch *prometheus.HistogramVec

	// RecordsDiscovered counts the total raw records returned by providers.
	RecordsDiscovered prometheus.Counter

	// RecordsBySource counts raw records discovered, labeled by source.
	RecordsBySource *prometheus.CounterVec

	// DuplicatesMerged counts records folded into an existing entry
	// during reconciliation.
	DuplicatesMerged prometheus.Counter

	// AuthorSearchesTotal counts author lookups, labeled by source.
	AuthorSearchesTotal *prometheus.CounterVec

	// AuthorSearchesFailed counts failed author lookups, labeled by source.
	AuthorSearchesFailed *prometheus.CounterVec

	// HTTPRequestsTotal counts HTTP requests served, labeled by method,
	// route pattern, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request handling duration in
	// seconds, labeled by method and route pattern.
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Queries
		QueriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of aggregated search queries handled",
		}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "End-to-end duration of aggregated queries in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		// Provider searches
		SearchesStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of provider searches started by source",
		}, []string{"source"}),
		SearchesCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_completed_total",
			Help:      "Total number of provider searches completed by source",
		}, []string{"source"}),
		SearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of provider searches that failed by source",
		}, []string{"source"}),
		SearchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of provider searches in seconds by source",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"source"}),
		RecordsPerSearch: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "records_per_search",
			Help:      "Number of records returned per provider search by source",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		}, []string{"source"}),

		// Reconciliation
		RecordsDiscovered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_discovered_total",
			Help:      "Total number of raw records returned by providers",
		}),
		RecordsBySource: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_by_source_total",
			Help:      "Total number of raw records discovered by source",
		}, []string{"source"}),
		DuplicatesMerged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_merged_total",
			Help:      "Total number of duplicate records merged during reconciliation",
		}),

		// Author lookups
		AuthorSearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "author_searches_total",
			Help:      "Total number of author lookups by source",
		}, []string{"source"}),
		AuthorSearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "author_searches_failed_total",
			Help:      "Total number of failed author lookups by source",
		}, []string{"source"}),

		// HTTP surface
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP request handling in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
	}
}

// RecordQueryCompleted records a finished aggregated query.
func (m *Metrics) RecordQueryCompleted(durationSeconds float64) {
	m.QueriesTotal.Inc()
	m.QueryDuration.Observe(durationSeconds)
}

// RecordSearchStarted records that a provider search has started.
func (m *Metrics) RecordSearchStarted(source string) {
	m.SearchesStarted.WithLabelValues(source).Inc()
}

// RecordSearchCompleted records that a provider search has completed.
func (m *Metrics) RecordSearchCompleted(source string, recordCount int, durationSeconds float64) {
	m.SearchesCompleted.WithLabelValues(source).Inc()
	m.SearchDuration.WithLabelValues(source).Observe(durationSeconds)
	m.RecordsPerSearch.WithLabelValues(source).Observe(float64(recordCount))
}

// RecordSearchFailed records that a provider search has failed.
func (m *Metrics) RecordSearchFailed(source string, durationSeconds float64) {
	m.SearchesFailed.WithLabelValues(source).Inc()
	m.SearchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordRecordsDiscovered records raw records discovered from a source.
func (m *Metrics) RecordRecordsDiscovered(source string, count int) {
	m.RecordsDiscovered.Add(float64(count))
	m.RecordsBySource.WithLabelValues(source).Add(float64(count))
}

// RecordDuplicatesMerged records duplicates folded in during reconciliation.
func (m *Metrics) RecordDuplicatesMerged(count int) {
	m.DuplicatesMerged.Add(float64(count))
}

// RecordAuthorSearch records an author lookup against a source.
func (m *Metrics) RecordAuthorSearch(source string) {
	m.AuthorSearchesTotal.WithLabelValues(source).Inc()
}

// RecordAuthorSearchFailed records a failed author lookup.
func (m *Metrics) RecordAuthorSearchFailed(source string) {
	m.AuthorSearchesFailed.WithLabelValues(source).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}
