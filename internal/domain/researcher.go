package domain

// Researcher is an author-lookup result from a provider that supports
// author search. Researchers are reported verbatim per provider; the
// service does not attempt to resolve author identity across providers.
type Researcher struct {
	Name          string     `json:"name"`
	ID            string     `json:"id,omitempty"`
	Affiliation   string     `json:"affiliation,omitempty"`
	HIndex        int        `json:"h_index"`
	CitationCount int        `json:"citation_count"`
	PaperCount    int        `json:"paper_count"`
	URL           string     `json:"url,omitempty"`
	Source        SourceType `json:"source"`
}
