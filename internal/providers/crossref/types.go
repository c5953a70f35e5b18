// Package crossref provides a client for the Crossref REST API.
//
// Crossref is the DOI registration agency for scholarly publishing; its
// works endpoint is the most reliable source of DOI-bearing records.
//
// API Documentation: https://api.crossref.org/swagger-ui/index.html
package crossref

// WorksResponse represents the response from the Crossref /works endpoint.
type WorksResponse struct {
	// Status is "ok" for successful responses.
	Status string `json:"status"`

	// Message contains the search results.
	Message Message `json:"message"`
}

// Message is the payload wrapper of a Crossref works response.
type Message struct {
	// TotalResults is the total number of works matching the query.
	TotalResults int `json:"total-results"`

	// Items contains the list of works returned by the search.
	Items []Work `json:"items"`
}

// Work represents a single work in the Crossref API response.
type Work struct {
	// DOI is the work's Digital Object Identifier.
	DOI string `json:"DOI"`

	// Title holds the work title; Crossref returns it as an array.
	Title []string `json:"title"`

	// Author is the list of work authors with structured names.
	Author []WorkAuthor `json:"author"`

	// Issued holds the publication date as nested date parts.
	Issued DateParts `json:"issued"`

	// ContainerTitle is the journal or container name array.
	ContainerTitle []string `json:"container-title"`

	// IsReferencedByCount is the number of citations to this work.
	IsReferencedByCount int `json:"is-referenced-by-count"`

	// URL is the primary resource URL, typically the publisher page.
	URL string `json:"URL"`
}

// WorkAuthor represents an author with Crossref's given/family split.
type WorkAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateParts holds Crossref's nested date representation,
// e.g. {"date-parts": [[2023, 6, 5]]}.
type DateParts struct {
	DateParts [][]int `json:"date-parts"`
}
