package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

func TestNewMetrics(t *testing.T) {
	m := NewMetrics("test_scholarly_search_new")

	assert.NotNil(t, m.QueriesTotal)
	assert.NotNil(t, m.QueryDuration)
	assert.NotNil(t, m.SearchesStarted)
	assert.NotNil(t, m.SearchesCompleted)
	assert.NotNil(t, m.SearchesFailed)
	assert.NotNil(t, m.SearchDuration)
	assert.NotNil(t, m.RecordsPerSearch)
	assert.NotNil(t, m.RecordsDiscovered)
	assert.NotNil(t, m.RecordsBySource)
	assert.NotNil(t, m.DuplicatesMerged)
	assert.NotNil(t, m.AuthorSearchesTotal)
	assert.NotNil(t, m.AuthorSearchesFailed)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
}

func TestRecordQueryCompleted(t *testing.T) {
	m := NewMetrics("test_query_completed")

	initial := testutil.ToFloat64(m.QueriesTotal)
	m.RecordQueryCompleted(1.5)
	assert.Equal(t, initial+1, testutil.ToFloat64(m.QueriesTotal))

	histCount, err := getHistogramSampleCount(m.QueryDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), histCount)
}

func TestRecordSearchStarted(t *testing.T) {
	m := NewMetrics("test_search_started")

	m.RecordSearchStarted("semantic_scholar")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesStarted.WithLabelValues("semantic_scholar")))
}

func TestRecordSearchCompleted(t *testing.T) {
	m := NewMetrics("test_search_completed")

	m.RecordSearchCompleted("openalex", 42, 2.5)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesCompleted.WithLabelValues("openalex")))
}

func TestRecordSearchFailed(t *testing.T) {
	m := NewMetrics("test_search_failed")

	m.RecordSearchFailed("core", 1.0)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesFailed.WithLabelValues("core")))
}

func TestRecordRecordsDiscovered(t *testing.T) {
	m := NewMetrics("test_records_discovered")

	initial := testutil.ToFloat64(m.RecordsDiscovered)
	m.RecordRecordsDiscovered("crossref", 25)
	assert.Equal(t, initial+25, testutil.ToFloat64(m.RecordsDiscovered))
	assert.Equal(t, float64(25), testutil.ToFloat64(m.RecordsBySource.WithLabelValues("crossref")))
}

func TestRecordDuplicatesMerged(t *testing.T) {
	m := NewMetrics("test_duplicates_merged")

	initial := testutil.ToFloat64(m.DuplicatesMerged)
	m.RecordDuplicatesMerged(7)
	assert.Equal(t, initial+7, testutil.ToFloat64(m.DuplicatesMerged))
}

func TestRecordAuthorSearch(t *testing.T) {
	m := NewMetrics("test_author_search")

	m.RecordAuthorSearch("openalex")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthorSearchesTotal.WithLabelValues("openalex")))

	m.RecordAuthorSearchFailed("openalex")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthorSearchesFailed.WithLabelValues("openalex")))
}

func TestRecordHTTPRequest(t *testing.T) {
	m := NewMetrics("test_http_request")

	m.RecordHTTPRequest("GET", "/api/v1/search", "200", 0.25)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/search", "200")))
}

// Helper to get histogram sample count
func getHistogramSampleCount(h prometheus.Histogram) (uint64, error) {
	ch := make(chan prometheus.Metric, 1)
	h.Collect(ch)
	close(ch)

	var m prometheus.Metric
	for m = range ch {
		break
	}

	var dto = &dto.Metric{}
	if err := m.Write(dto); err != nil {
		return 0, err
	}

	return dto.Histogram.GetSampleCount(), nil
}
