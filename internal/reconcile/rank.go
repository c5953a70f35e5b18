package reconcile

import (
	"sort"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// Rank sorts records in place by descending quality: DOI-bearing records
// first, then by citation count, then by year. The sort is stable, so ties
// keep the reconciliation output order and re-ranking an already ranked
// slice changes nothing.
func Rank(records []*domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if a.HasDOI() != b.HasDOI() {
			return a.HasDOI()
		}
		if a.CitationCount != b.CitationCount {
			return a.CitationCount > b.CitationCount
		}
		return a.Year > b.Year
	})
}
