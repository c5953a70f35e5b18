package domain

import "strings"

// SourceType identifies a scholarly metadata provider.
type SourceType string

// Known provider types.
const (
	SourceTypeCrossref        SourceType = "crossref"
	SourceTypeOpenAlex        SourceType = "openalex"
	SourceTypeSemanticScholar SourceType = "semantic_scholar"
	SourceTypeArXiv           SourceType = "arxiv"
	SourceTypeCORE            SourceType = "core"
)

// AccessType classifies how a source link provides access to a paper.
type AccessType string

// Access type vocabulary for source links.
const (
	AccessOpenAccess AccessType = "oa"
	AccessPaywalled  AccessType = "paywalled"
	AccessRepository AccessType = "repository"
	AccessPreprint   AccessType = "preprint"
	AccessCanonical  AccessType = "canonical"
)

// Source link labels. The vocabulary is fixed so downstream consumers can
// group and display links consistently.
const (
	LabelPublisherPage       = "Publisher Page"
	LabelOpenAccessPDF       = "Open Access PDF"
	LabelRepositoryVersion   = "Repository Version"
	LabelPreprintPage        = "Preprint Page"
	LabelSemanticScholarPage = "Semantic Scholar Page"
)

// Author represents a paper author. Only the display name is guaranteed;
// providers do not agree on a structured given/family split.
type Author struct {
	Name string `json:"name"`
}

// SourceLink is one URL at which a paper can be accessed.
type SourceLink struct {
	URL        string     `json:"url"`
	Label      string     `json:"label"`
	AccessType AccessType `json:"access_type"`
}

// Record is the unified scholarly record produced by reconciliation.
//
// A record is created per raw provider result, mutated in place only while
// reconciliation merges duplicates into it, and is immutable afterwards.
// Records are owned by the response being constructed; nothing is shared
// across requests.
type Record struct {
	// Title is the paper title. Required, but an empty title still flows
	// through reconciliation with a degraded fallback key.
	Title string `json:"title"`

	// Authors in provider-reported order; the first author is primary.
	Authors []Author `json:"authors"`

	// Year is the publication year. Zero means unknown.
	Year int `json:"year,omitempty"`

	// Journal is the journal or venue name. Empty means unknown.
	Journal string `json:"journal,omitempty"`

	// DOI in canonical form: lower-cased, no doi.org prefix.
	// Empty means the provider did not report one.
	DOI string `json:"doi,omitempty"`

	// Sources holds access links, deduplicated by exact URL.
	// Insertion order is preserved so "first source" is deterministic.
	Sources []SourceLink `json:"sources"`

	// OriginProvider is the provider that first produced this record.
	// Kept for provenance; never updated when duplicates merge in.
	OriginProvider SourceType `json:"origin_provider"`

	// CitationCount is the maximum citation count seen across all
	// duplicate detections of this record.
	CitationCount int `json:"citation_count"`

	// RelevanceScore is the discovering provider's relevance score,
	// if it supplies one. Not merged across providers.
	RelevanceScore float64 `json:"relevance_score,omitempty"`

	// Bibliometric fields used only by citation renderers. No adapter
	// currently populates these; renderers degrade gracefully when absent.
	Volume string `json:"volume,omitempty"`
	Issue  string `json:"issue,omitempty"`
	Pages  string `json:"pages,omitempty"`
}

// HasDOI reports whether the record carries a DOI.
func (r *Record) HasDOI() bool {
	return r.DOI != ""
}

// FirstAuthor returns the primary author, or a zero Author if the record
// has no authors.
func (r *Record) FirstAuthor() Author {
	if len(r.Authors) == 0 {
		return Author{}
	}
	return r.Authors[0]
}

// AddSource appends a source link unless a link with the same URL is
// already present. Returns true if the link was added.
func (r *Record) AddSource(link SourceLink) bool {
	for _, s := range r.Sources {
		if s.URL == link.URL {
			return false
		}
	}
	r.Sources = append(r.Sources, link)
	return true
}

// NormalizeDOI converts a DOI to its canonical matching form: URL and
// scheme prefixes stripped, lower-cased, whitespace trimmed.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}
