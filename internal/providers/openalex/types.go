// Package openalex provides a client for the OpenAlex API.
//
// OpenAlex is a fully open catalog of scholarly works, authors, and venues.
// This package implements both paper search and author lookup.
//
// API Documentation: https://docs.openalex.org/
package openalex

// SearchResponse represents the response from the OpenAlex works endpoint.
type SearchResponse struct {
	// Meta contains result counts and pagination info.
	Meta Meta `json:"meta"`

	// Results contains the list of works returned by the search.
	Results []Work `json:"results"`
}

// Meta contains response metadata from OpenAlex.
type Meta struct {
	// Count is the total number of works matching the query.
	Count int `json:"count"`

	// Page is the current page number (1-indexed).
	Page int `json:"page"`

	// PerPage is the page size.
	PerPage int `json:"per_page"`
}

// Work represents a single work in the OpenAlex API response.
type Work struct {
	// ID is the full OpenAlex URL identifier.
	ID string `json:"id"`

	// DOI is the work's DOI as a full doi.org URL.
	DOI string `json:"doi"`

	// DisplayName is the work title.
	DisplayName string `json:"display_name"`

	// PublicationYear is the year of publication.
	PublicationYear int `json:"publication_year"`

	// Authorships is the ordered list of authorship entries.
	Authorships []Authorship `json:"authorships"`

	// PrimaryLocation is the primary hosting location of the work.
	PrimaryLocation *Location `json:"primary_location"`

	// Locations lists all known hosting locations (repositories, mirrors).
	Locations []Location `json:"locations"`

	// OpenAccess describes the work's open access status.
	OpenAccess *OpenAccess `json:"open_access"`

	// CitedByCount is the number of citations to this work.
	CitedByCount int `json:"cited_by_count"`

	// RelevanceScore is OpenAlex's query relevance score.
	RelevanceScore float64 `json:"relevance_score"`
}

// Authorship represents an author's contribution to a work.
type Authorship struct {
	// Author contains the author's identity information.
	Author AuthorInfo `json:"author"`
}

// AuthorInfo contains author identity details.
type AuthorInfo struct {
	// ID is the full OpenAlex URL identifier for the author.
	ID string `json:"id"`

	// DisplayName is the author's display name.
	DisplayName string `json:"display_name"`
}

// Location represents a hosting location for a work.
type Location struct {
	// LandingPageURL is the URL of the landing page.
	LandingPageURL string `json:"landing_page_url"`

	// PDFURL is the direct URL to a PDF, if available.
	PDFURL string `json:"pdf_url"`

	// IsOA indicates whether this location is open access.
	IsOA bool `json:"is_oa"`

	// Source describes the hosting venue.
	Source *LocationSource `json:"source"`
}

// LocationSource describes the venue hosting a location.
type LocationSource struct {
	// DisplayName is the venue name.
	DisplayName string `json:"display_name"`

	// Type is the venue type (e.g., "journal", "repository").
	Type string `json:"type"`
}

// OpenAccess describes a work's open access status.
type OpenAccess struct {
	// IsOA indicates whether the work is open access anywhere.
	IsOA bool `json:"is_oa"`
}

// AuthorsResponse represents the response from the OpenAlex authors endpoint.
type AuthorsResponse struct {
	// Meta contains result counts and pagination info.
	Meta Meta `json:"meta"`

	// Results contains the list of authors returned by the search.
	Results []AuthorEntry `json:"results"`
}

// AuthorEntry represents a single author in the authors endpoint response.
type AuthorEntry struct {
	// ID is the full OpenAlex URL identifier for the author.
	ID string `json:"id"`

	// DisplayName is the author's display name.
	DisplayName string `json:"display_name"`

	// CitedByCount is the author's total citation count.
	CitedByCount int `json:"cited_by_count"`

	// WorksCount is the number of works attributed to the author.
	WorksCount int `json:"works_count"`

	// SummaryStats contains bibliometric summary statistics.
	SummaryStats *SummaryStats `json:"summary_stats"`

	// LastKnownInstitution is the author's most recent affiliation.
	LastKnownInstitution *Institution `json:"last_known_institution"`
}

// SummaryStats contains author-level bibliometric statistics.
type SummaryStats struct {
	// HIndex is the author's h-index.
	HIndex int `json:"h_index"`
}

// Institution represents an institutional affiliation.
type Institution struct {
	// DisplayName is the institution name.
	DisplayName string `json:"display_name"`
}
