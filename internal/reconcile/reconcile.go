// Package reconcile collapses records describing the same work into single
// entries and ranks the result.
//
// Records arrive flattened in provider registration order, so deterministic
// provider ordering propagates through reconciliation: whichever provider is
// registered first wins all first-seen fields.
package reconcile

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// Merge collapses duplicate records in a single pass over the input.
//
// Identity is resolved through two independent partitions: records with a DOI
// are keyed by the lowercased DOI, records without one by a lossy fallback key
// built from title, year and first-author surname. The partitions are never
// cross-checked, so a record first seen without a DOI that later gains one
// through a sibling stays in the fallback partition. That can leave the same
// work once per partition; the miss is accepted in exchange for the single
// pass.
//
// The first record seen under a key owns the entry. Later records fold in:
// sources are unioned by URL in arrival order, citation count takes the
// maximum, and year, journal and DOI fill in only when the entry lacks them.
// Title, authors, origin provider and relevance score always keep the
// first-seen values.
//
// Output order is DOI-keyed entries in first-seen order, then fallback-keyed
// entries in first-seen order. Entries are the input records themselves,
// mutated in place by merging.
func Merge(records []*domain.Record) []*domain.Record {
	byDOI := make(map[string]*domain.Record)
	byFallback := make(map[string]*domain.Record)
	var doiOrder []string
	var fallbackOrder []string

	for _, record := range records {
		doi := strings.ToLower(record.DOI)

		var existing *domain.Record
		var key string
		if doi != "" {
			existing = byDOI[doi]
			key = doi
		} else {
			key = FallbackKey(record)
			existing = byFallback[key]
		}

		if existing == nil {
			if doi != "" {
				byDOI[key] = record
				doiOrder = append(doiOrder, key)
			} else {
				byFallback[key] = record
				fallbackOrder = append(fallbackOrder, key)
			}
			continue
		}

		mergeInto(existing, record)
	}

	merged := make([]*domain.Record, 0, len(doiOrder)+len(fallbackOrder))
	for _, key := range doiOrder {
		merged = append(merged, byDOI[key])
	}
	for _, key := range fallbackOrder {
		merged = append(merged, byFallback[key])
	}
	return merged
}

// mergeInto folds an incoming duplicate into the existing entry.
func mergeInto(existing, incoming *domain.Record) {
	for _, link := range incoming.Sources {
		existing.AddSource(link)
	}

	if incoming.CitationCount > existing.CitationCount {
		existing.CitationCount = incoming.CitationCount
	}
	if existing.Year == 0 && incoming.Year != 0 {
		existing.Year = incoming.Year
	}
	if existing.Journal == "" && incoming.Journal != "" {
		existing.Journal = incoming.Journal
	}
	if existing.DOI == "" && incoming.DOI != "" {
		existing.DOI = incoming.DOI
	}
}

// FallbackKey builds the identity key for records without a DOI:
// normalized title, year and lowercased first-author surname, pipe-joined.
// Missing components degrade to empty strings rather than failing, so
// distinct sparse records can collide. Collisions merge records; they never
// drop them.
func FallbackKey(record *domain.Record) string {
	var b strings.Builder
	for _, r := range strings.ToLower(record.Title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	var year string
	if record.Year != 0 {
		year = strconv.Itoa(record.Year)
	}

	var author string
	if tokens := strings.Fields(record.FirstAuthor().Name); len(tokens) > 0 {
		author = strings.ToLower(tokens[len(tokens)-1])
	}

	return b.String() + "|" + year + "|" + author
}
