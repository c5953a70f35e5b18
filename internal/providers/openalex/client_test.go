package openalex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unischolar/scholarly-search-service/internal/domain"
	"github.com/unischolar/scholarly-search-service/internal/providers"
)

// newTestClient creates a client configured for testing with the given server URL.
func newTestClient(serverURL string, enabled bool) *Client {
	cfg := Config{
		BaseURL:    serverURL,
		Email:      "test@example.com",
		Timeout:    5 * time.Second,
		RateLimit:  100, // High rate for testing
		BurstSize:  100,
		MaxResults: 25,
		Enabled:    enabled,
	}

	httpClient := providers.NewHTTPClient(providers.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "TestClient/1.0",
	})

	return NewWithHTTPClient(cfg, httpClient)
}

// sampleSearchResponse returns a sample OpenAlex works response for testing.
func sampleSearchResponse() SearchResponse {
	return SearchResponse{
		Meta: Meta{Count: 2, Page: 1, PerPage: 25},
		Results: []Work{
			{
				ID:              "https://openalex.org/W2741809807",
				DOI:             "https://doi.org/10.1038/nature12373",
				DisplayName:     "CRISPR-Cas Systems for Editing, Regulating and Targeting Genomes",
				PublicationYear: 2014,
				CitedByCount:    5000,
				RelevanceScore:  87.5,
				OpenAccess:      &OpenAccess{IsOA: true},
				Authorships: []Authorship{
					{Author: AuthorInfo{ID: "https://openalex.org/A1", DisplayName: "John Smith"}},
					{Author: AuthorInfo{ID: "https://openalex.org/A2", DisplayName: "Jane Doe"}},
				},
				PrimaryLocation: &Location{
					LandingPageURL: "https://www.nature.com/articles/nature12373",
					PDFURL:         "https://europepmc.org/articles/pmc4022601?pdf=render",
					IsOA:           true,
					Source:         &LocationSource{DisplayName: "Nature Biotechnology", Type: "journal"},
				},
				Locations: []Location{
					{
						LandingPageURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC4022601",
						IsOA:           true,
						Source:         &LocationSource{DisplayName: "PubMed Central", Type: "repository"},
					},
				},
			},
			{
				ID:              "https://openalex.org/W2741809808",
				DisplayName:     "Gene Therapy Advances",
				PublicationYear: 2023,
				CitedByCount:    150,
				OpenAccess:      &OpenAccess{IsOA: false},
				Authorships: []Authorship{
					{Author: AuthorInfo{ID: "https://openalex.org/A3", DisplayName: "Alice Johnson"}},
				},
				PrimaryLocation: &Location{
					LandingPageURL: "https://www.science.org/doi/10.1126/science.1234567",
					Source:         &LocationSource{DisplayName: "Science", Type: "journal"},
				},
			},
		},
	}
}

// sampleAuthorsResponse returns a sample OpenAlex authors response for testing.
func sampleAuthorsResponse() AuthorsResponse {
	return AuthorsResponse{
		Meta: Meta{Count: 1, Page: 1, PerPage: 25},
		Results: []AuthorEntry{
			{
				ID:                   "https://openalex.org/A1234",
				DisplayName:          "Jennifer Doudna",
				CitedByCount:         120000,
				WorksCount:           450,
				SummaryStats:         &SummaryStats{HIndex: 150},
				LastKnownInstitution: &Institution{DisplayName: "UC Berkeley"},
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	t.Run("creates client with default config", func(t *testing.T) {
		client := New(Config{Enabled: true})

		require.NotNil(t, client)
		assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
		assert.Equal(t, DefaultTimeout, client.config.Timeout)
		assert.Equal(t, DefaultRateLimit, client.config.RateLimit)
		assert.Equal(t, DefaultMaxResults, client.config.MaxResults)
	})

	t.Run("creates client with custom config", func(t *testing.T) {
		cfg := Config{
			BaseURL:    "https://custom.api.org",
			Email:      "researcher@university.edu",
			MaxResults: 50,
			Enabled:    true,
		}
		client := New(cfg)

		require.NotNil(t, client)
		assert.Equal(t, "https://custom.api.org", client.config.BaseURL)
		assert.Equal(t, 50, client.config.MaxResults)
	})
}

func TestClient_SourceType(t *testing.T) {
	client := New(Config{Enabled: true})
	assert.Equal(t, domain.SourceTypeOpenAlex, client.SourceType())
}

func TestClient_Name(t *testing.T) {
	client := New(Config{Enabled: true})
	assert.Equal(t, "OpenAlex", client.Name())
}

func TestClient_Search(t *testing.T) {
	t.Run("successful search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/works", r.URL.Path)
			assert.Equal(t, "CRISPR", r.URL.Query().Get("search"))
			assert.Equal(t, "25", r.URL.Query().Get("per_page"))
			assert.Equal(t, "test@example.com", r.URL.Query().Get("mailto"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(sampleSearchResponse())
		}))
		defer server.Close()

		client := newTestClient(server.URL, true)
		result, err := client.Search(context.Background(), providers.SearchParams{Query: "CRISPR", Limit: 25})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, 2, len(result.Records))
		assert.Equal(t, 2, result.TotalResults)
		assert.Equal(t, domain.SourceTypeOpenAlex, result.Source)

		record := result.Records[0]
		assert.Equal(t, "CRISPR-Cas Systems for Editing, Regulating and Targeting Genomes", record.Title)
		assert.Equal(t, "10.1038/nature12373", record.DOI)
		assert.Equal(t, 2014, record.Year)
		assert.Equal(t, "Nature Biotechnology", record.Journal)
		assert.Equal(t, 5000, record.CitationCount)
		assert.Equal(t, 87.5, record.RelevanceScore)
		require.Len(t, record.Authors, 2)
		assert.Equal(t, "John Smith", record.Authors[0].Name)

		// Publisher page leads, then OA PDF, then the repository mirror.
		require.Len(t, record.Sources, 3)
		assert.Equal(t, "https://www.nature.com/articles/nature12373", record.Sources[0].URL)
		assert.Equal(t, domain.LabelPublisherPage, record.Sources[0].Label)
		assert.Equal(t, domain.AccessOpenAccess, record.Sources[0].AccessType)
		assert.Equal(t, domain.LabelOpenAccessPDF, record.Sources[1].Label)
		assert.Equal(t, domain.LabelRepositoryVersion, record.Sources[2].Label)
	})

	t.Run("paywalled work has paywalled publisher link", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(sampleSearchResponse())
		}))
		defer server.Close()

		client := newTestClient(server.URL, true)
		result, err := client.Search(context.Background(), providers.SearchParams{Query: "gene therapy"})
		require.NoError(t, err)

		record := result.Records[1]
		assert.Empty(t, record.DOI)
		require.Len(t, record.Sources, 1)
		assert.Equal(t, domain.AccessPaywalled, record.Sources[0].AccessType)
	})

	t.Run("caps per_page at API limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "200", r.URL.Query().Get("per_page"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(SearchResponse{})
		}))
		defer server.Close()

		client := newTestClient(server.URL, true)
		_, err := client.Search(context.Background(), providers.SearchParams{Query: "CRISPR", Limit: 500})
		require.NoError(t, err)
	})

	t.Run("API error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer server.Close()

		client := newTestClient(server.URL, true)
		_, err := client.Search(context.Background(), providers.SearchParams{Query: "CRISPR"})
		require.Error(t, err)

		var apiErr *domain.ExternalAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		assert.Equal(t, "OpenAlex", apiErr.Source)
	})
}

func TestClient_SearchAuthors(t *testing.T) {
	t.Run("successful author search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/authors", r.URL.Path)
			assert.Equal(t, "Doudna", r.URL.Query().Get("search"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(sampleAuthorsResponse())
		}))
		defer server.Close()

		client := newTestClient(server.URL, true)
		researchers, err := client.SearchAuthors(context.Background(), providers.SearchParams{Query: "Doudna"})
		require.NoError(t, err)
		require.Len(t, researchers, 1)

		r := researchers[0]
		assert.Equal(t, "Jennifer Doudna", r.Name)
		assert.Equal(t, "https://openalex.org/A1234", r.ID)
		assert.Equal(t, 120000, r.CitationCount)
		assert.Equal(t, 450, r.PaperCount)
		assert.Equal(t, 150, r.HIndex)
		assert.Equal(t, "UC Berkeley", r.Affiliation)
		assert.Equal(t, domain.SourceTypeOpenAlex, r.Source)
	})

	t.Run("handles missing summary stats", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := sampleAuthorsResponse()
			resp.Results[0].SummaryStats = nil
			resp.Results[0].LastKnownInstitution = nil
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestClient(server.URL, true)
		researchers, err := client.SearchAuthors(context.Background(), providers.SearchParams{Query: "Doudna"})
		require.NoError(t, err)
		require.Len(t, researchers, 1)
		assert.Zero(t, researchers[0].HIndex)
		assert.Empty(t, researchers[0].Affiliation)
	})
}
