package semanticscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/unischolar/scholarly-search-service/internal/domain"
	"github.com/unischolar/scholarly-search-service/internal/providers"
)

const (
	// DefaultBaseURL is the default Semantic Scholar Graph API base URL.
	DefaultBaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultRateLimit is the default rate limit for requests per second.
	// Without an API key, Semantic Scholar allows roughly 1 request/second.
	DefaultRateLimit = 1.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 2

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the default maximum results per request.
	DefaultMaxResults = 20

	// maxLimit is the Graph API page size limit for paper search.
	maxLimit = 100

	// sourceName is the human-readable name for this source.
	sourceName = "Semantic Scholar"

	// searchFields lists the paper fields the adapter consumes.
	searchFields = "title,authors,year,venue,url,externalIds,citationCount,openAccessPdf"
)

// Config holds configuration for the Semantic Scholar client.
type Config struct {
	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL string

	// APIKey is an optional API key for higher rate limits.
	APIKey string

	// Timeout is the request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxResults is the maximum results to return per search request.
	MaxResults int

	// Enabled indicates whether this source is enabled for searches.
	Enabled bool
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
}

// Client implements the providers.Source interface for Semantic Scholar.
type Client struct {
	config     Config
	httpClient *providers.HTTPClient
}

// Ensure Client implements the Source interface.
var _ providers.Source = (*Client)(nil)

// New creates a new Semantic Scholar client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := providers.NewHTTPClient(providers.HTTPClientConfig{
		Timeout:      cfg.Timeout,
		RateLimit:    cfg.RateLimit,
		BurstSize:    cfg.BurstSize,
		APIKey:       cfg.APIKey,
		APIKeyHeader: "x-api-key",
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new Semantic Scholar client with a custom HTTP
// client. This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *providers.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Search queries Semantic Scholar for papers matching the given parameters.
func (c *Client) Search(ctx context.Context, params providers.SearchParams) (*providers.SearchResult, error) {
	startTime := time.Now()

	searchURL, err := c.buildSearchURL(params)
	if err != nil {
		return nil, fmt.Errorf("building search URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, domain.NewExternalAPIError(
			sourceName,
			resp.StatusCode,
			string(body),
			nil,
		)
	}

	// Limit body to 10MB to prevent resource exhaustion.
	var searchResp SearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	records := make([]*domain.Record, 0, len(searchResp.Data))
	for i := range searchResp.Data {
		records = append(records, c.paperToRecord(&searchResp.Data[i]))
	}

	return &providers.SearchResult{
		Records:        records,
		TotalResults:   searchResp.Total,
		Source:         domain.SourceTypeSemanticScholar,
		SearchDuration: time.Since(startTime),
	}, nil
}

// SourceType returns the source type identifier.
func (c *Client) SourceType() domain.SourceType {
	return domain.SourceTypeSemanticScholar
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// buildSearchURL constructs the paper search URL with query parameters.
func (c *Client) buildSearchURL(params providers.SearchParams) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path += "/paper/search"

	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("fields", searchFields)

	limit := params.Limit
	if limit == 0 {
		limit = c.config.MaxResults
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	query.Set("limit", strconv.Itoa(limit))

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

// paperToRecord converts a Semantic Scholar paper to a domain Record.
func (c *Client) paperToRecord(paper *PaperResult) *domain.Record {
	authors := make([]domain.Author, 0, len(paper.Authors))
	for _, a := range paper.Authors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		authors = append(authors, domain.Author{Name: name})
	}

	var doi string
	if paper.ExternalIDs != nil {
		doi = domain.NormalizeDOI(paper.ExternalIDs.DOI)
	}

	record := &domain.Record{
		Title:          strings.TrimSpace(paper.Title),
		Authors:        authors,
		Year:           paper.Year,
		Journal:        paper.Venue,
		DOI:            doi,
		OriginProvider: domain.SourceTypeSemanticScholar,
		CitationCount:  paper.CitationCount,
	}

	if paper.URL != "" {
		record.AddSource(domain.SourceLink{
			URL:        paper.URL,
			Label:      domain.LabelSemanticScholarPage,
			AccessType: domain.AccessCanonical,
		})
	}

	if doi != "" {
		record.AddSource(domain.SourceLink{
			URL:        "https://doi.org/" + doi,
			Label:      domain.LabelPublisherPage,
			AccessType: domain.AccessPaywalled,
		})
	}

	if paper.OpenAccessPDF != nil && paper.OpenAccessPDF.URL != "" {
		record.AddSource(domain.SourceLink{
			URL:        paper.OpenAccessPDF.URL,
			Label:      domain.LabelOpenAccessPDF,
			AccessType: domain.AccessOpenAccess,
		})
	}

	return record
}
