// Package core provides a client for the CORE API.
//
// CORE aggregates open access research papers from repositories and
// journals worldwide. Every record it returns has an open access
// repository version.
//
// API Documentation: https://core.ac.uk/documentation/api
package core

// SearchResponse represents the response from the CORE article search endpoint.
type SearchResponse struct {
	// Status is "OK" for successful responses.
	Status string `json:"status"`

	// TotalHits is the total number of articles matching the query.
	TotalHits int `json:"totalHits"`

	// Data contains the list of articles returned by the search.
	Data []Article `json:"data"`
}

// Article represents a single article in the CORE API response.
type Article struct {
	// ID is the CORE identifier, used to build the reader page URL.
	ID string `json:"id"`

	// Title is the article title.
	Title string `json:"title"`

	// Authors is the list of author names as plain strings.
	Authors []string `json:"authors"`

	// Year is the publication year.
	Year int `json:"year"`

	// Publisher is the publishing venue name.
	Publisher string `json:"publisher"`

	// DOI is the article's Digital Object Identifier, if known.
	DOI string `json:"doi"`

	// DownloadURL is the direct URL to the full-text PDF, if available.
	DownloadURL string `json:"downloadUrl"`
}
