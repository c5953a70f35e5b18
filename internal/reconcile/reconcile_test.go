package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

func record(title string, year int, doi string, authors ...string) *domain.Record {
	r := &domain.Record{
		Title: title,
		Year:  year,
		DOI:   doi,
	}
	for _, name := range authors {
		r.Authors = append(r.Authors, domain.Author{Name: name})
	}
	return r
}

func TestFallbackKey(t *testing.T) {
	tests := []struct {
		name     string
		record   *domain.Record
		expected string
	}{
		{
			name:     "full record",
			record:   record("Quantum Computing!", 2023, "", "John Doe"),
			expected: "quantumcomputing|2023|doe",
		},
		{
			name:     "punctuation and case stripped from title",
			record:   record("Quantum-Computing: A Survey?", 2023, "", "Jane Q. Doe"),
			expected: "quantumcomputingasurvey|2023|doe",
		},
		{
			name:     "no year",
			record:   record("Untitled Draft", 0, "", "Smith"),
			expected: "untitleddraft||smith",
		},
		{
			name:     "no authors",
			record:   record("Anonymous Work", 2020, ""),
			expected: "anonymouswork|2020|",
		},
		{
			name:     "everything missing",
			record:   record("", 0, ""),
			expected: "||",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackKey(tt.record))
		})
	}
}

func TestMerge_DOICaseInsensitive(t *testing.T) {
	first := record("Paper A", 2021, "10.1/X", "John Doe")
	first.CitationCount = 10
	first.AddSource(domain.SourceLink{URL: "https://publisher.example/a", Label: domain.LabelPublisherPage})

	second := record("Paper A (mirror)", 2021, "10.1/x", "J. Doe")
	second.CitationCount = 5
	second.AddSource(domain.SourceLink{URL: "https://oa.example/a.pdf", Label: domain.LabelOpenAccessPDF})

	merged := Merge([]*domain.Record{first, second})
	require.Len(t, merged, 1)

	got := merged[0]
	assert.Equal(t, "Paper A", got.Title, "first-seen title wins")
	assert.Equal(t, "10.1/X", got.DOI, "first-seen DOI is kept verbatim")
	assert.Equal(t, 10, got.CitationCount)
	require.Len(t, got.Sources, 2)
	assert.Equal(t, "https://publisher.example/a", got.Sources[0].URL)
	assert.Equal(t, "https://oa.example/a.pdf", got.Sources[1].URL)
}

func TestMerge_FallbackKey(t *testing.T) {
	first := record("Quantum Computing", 2023, "", "John Doe")
	first.AddSource(domain.SourceLink{URL: "https://arxiv.org/abs/2301.1"})

	second := record("Quantum-Computing!", 2023, "", "Johnathan Doe")
	second.AddSource(domain.SourceLink{URL: "https://repo.example/2301.1"})

	merged := Merge([]*domain.Record{first, second})
	require.Len(t, merged, 1)
	assert.Equal(t, "Quantum Computing", merged[0].Title)
	assert.Len(t, merged[0].Sources, 2)
}

func TestMerge_PartitionsNeverCrossChecked(t *testing.T) {
	// Same work: the DOI-less version arrives first, the DOI-bearing one
	// second. They land in different partitions and stay separate.
	preprint := record("Deep Learning Review", 2022, "", "Alice Smith")
	published := record("Deep Learning Review", 2022, "10.5/dl", "Alice Smith")

	merged := Merge([]*domain.Record{preprint, published})
	require.Len(t, merged, 2)

	// DOI partition is emitted first regardless of arrival order.
	assert.Equal(t, "10.5/dl", merged[0].DOI)
	assert.Empty(t, merged[1].DOI)
}

func TestMerge_FieldRules(t *testing.T) {
	first := record("Sparse Record", 0, "10.9/sparse", "Bob Lee")
	first.Journal = ""
	first.CitationCount = 3
	first.OriginProvider = domain.SourceTypeCrossref
	first.RelevanceScore = 0.9

	second := record("Sparse Record, Enriched", 2020, "10.9/sparse", "Robert Lee", "Extra Author")
	second.Journal = "Nature"
	second.CitationCount = 50
	second.OriginProvider = domain.SourceTypeOpenAlex
	second.RelevanceScore = 0.2

	merged := Merge([]*domain.Record{first, second})
	require.Len(t, merged, 1)

	got := merged[0]
	assert.Equal(t, 2020, got.Year, "missing year filled from duplicate")
	assert.Equal(t, "Nature", got.Journal, "missing journal filled from duplicate")
	assert.Equal(t, 50, got.CitationCount, "citation count takes the max")
	assert.Equal(t, "Sparse Record", got.Title, "title is first-seen")
	assert.Len(t, got.Authors, 1, "authors are first-seen")
	assert.Equal(t, domain.SourceTypeCrossref, got.OriginProvider, "origin provider is first-seen")
	assert.Equal(t, 0.9, got.RelevanceScore, "relevance score is first-seen")
}

func TestMerge_OutputOrder(t *testing.T) {
	a := record("Alpha", 2020, "10.1/a", "A")
	b := record("Beta", 2021, "", "B")
	c := record("Gamma", 2022, "10.1/c", "C")
	d := record("Delta", 2023, "", "D")

	merged := Merge([]*domain.Record{a, b, c, d})
	require.Len(t, merged, 4)

	// DOI-keyed entries first in first-seen order, then fallback entries.
	assert.Equal(t, "Alpha", merged[0].Title)
	assert.Equal(t, "Gamma", merged[1].Title)
	assert.Equal(t, "Beta", merged[2].Title)
	assert.Equal(t, "Delta", merged[3].Title)
}

func TestMerge_Monotonicity(t *testing.T) {
	records := []*domain.Record{
		record("One", 2020, "10.1/one", "A"),
		record("One", 2020, "10.1/one", "A"),
		record("Two", 2021, "", "B"),
		record("Two", 2021, "", "B"),
		record("Three", 2022, "10.1/three", "C"),
	}
	for i, r := range records {
		r.AddSource(domain.SourceLink{URL: "https://example.org/" + r.Title + string(rune('a'+i))})
	}

	merged := Merge(records)
	assert.LessOrEqual(t, len(merged), len(records))

	// Every input source URL survives on some output record.
	outputURLs := make(map[string]bool)
	for _, r := range merged {
		for _, s := range r.Sources {
			outputURLs[s.URL] = true
		}
	}
	assert.Len(t, outputURLs, len(records))
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil))
	assert.Empty(t, Merge([]*domain.Record{}))
}

func TestRank(t *testing.T) {
	noDOIRecent := record("No DOI, recent", 2024, "", "A")
	noDOIRecent.CitationCount = 900

	withDOIFewCites := record("DOI, few citations", 2010, "10.1/few", "B")
	withDOIFewCites.CitationCount = 2

	withDOIManyCites := record("DOI, many citations", 2015, "10.1/many", "C")
	withDOIManyCites.CitationCount = 500

	records := []*domain.Record{noDOIRecent, withDOIFewCites, withDOIManyCites}
	Rank(records)

	// DOI presence dominates citations and recency.
	assert.Equal(t, "DOI, many citations", records[0].Title)
	assert.Equal(t, "DOI, few citations", records[1].Title)
	assert.Equal(t, "No DOI, recent", records[2].Title)
}

func TestRank_TiesBreakOnYear(t *testing.T) {
	older := record("Older", 2018, "10.1/o", "A")
	older.CitationCount = 100
	newer := record("Newer", 2022, "10.1/n", "B")
	newer.CitationCount = 100

	records := []*domain.Record{older, newer}
	Rank(records)

	assert.Equal(t, "Newer", records[0].Title)
	assert.Equal(t, "Older", records[1].Title)
}

func TestRank_Stable(t *testing.T) {
	// Fully tied records keep their input order.
	a := record("First", 2020, "10.1/a", "A")
	b := record("Second", 2020, "10.1/b", "B")
	records := []*domain.Record{a, b}

	Rank(records)
	assert.Equal(t, "First", records[0].Title)
	assert.Equal(t, "Second", records[1].Title)
}

func TestRank_Idempotent(t *testing.T) {
	records := []*domain.Record{
		record("A", 2024, "", "A"),
		record("B", 2020, "10.1/b", "B"),
		record("C", 2022, "10.1/c", "C"),
	}
	records[1].CitationCount = 5
	records[2].CitationCount = 70

	Rank(records)
	first := make([]*domain.Record, len(records))
	copy(first, records)

	Rank(records)
	assert.Equal(t, first, records)
}
