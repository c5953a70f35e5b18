package crossref

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
	// DefaultBaseURL is the default Crossref API base URL.
	DefaultBaseURL = "https://api.crossref.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// Crossref's polite pool (with a mailto) tolerates higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the default maximum results per request.
	DefaultMaxResults = 20

	// sourceName is the human-readable name for this source.
	sourceName = "Crossref"

	// selectFields limits the response to the fields the adapter consumes.
	selectFields = "DOI,title,author,issued,container-title,is-referenced-by-count,URL"
)

// Config holds configuration for the Crossref client.
type Config struct {
	// BaseURL is the Crossref API base URL.
	BaseURL string

	// Email is the contact email for the polite pool.
	Email string

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

// Client implements the providers.Source interface for Crossref.
type Client struct {
	config     Config
	httpClient *providers.HTTPClient
}

// Ensure Client implements the Source interface.
var _ providers.Source = (*Client)(nil)

// New creates a new Crossref client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	userAgent := "ScholarlySearchService/1.0"
	if cfg.Email != "" {
		userAgent += " (mailto:" + cfg.Email + ")"
	}

	httpClient := providers.NewHTTPClient(providers.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: userAgent,
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new Crossref client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *providers.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Search queries Crossref for works matching the given parameters.
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
	var worksResp WorksResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&worksResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	records := make([]*domain.Record, 0, len(worksResp.Message.Items))
	for i := range worksResp.Message.Items {
		records = append(records, c.workToRecord(&worksResp.Message.Items[i]))
	}

	return &providers.SearchResult{
		Records:        records,
		TotalResults:   worksResp.Message.TotalResults,
		Source:         domain.SourceTypeCrossref,
		SearchDuration: time.Since(startTime),
	}, nil
}

// SourceType returns the source type identifier.
func (c *Client) SourceType() domain.SourceType {
	return domain.SourceTypeCrossref
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// buildSearchURL constructs the works search URL with query parameters.
func (c *Client) buildSearchURL(params providers.SearchParams) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = "/works"

	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("select", selectFields)

	rows := params.Limit
	if rows == 0 {
		rows = c.config.MaxResults
	}
	query.Set("rows", strconv.Itoa(rows))

	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

// workToRecord converts a Crossref work to a domain Record.
func (c *Client) workToRecord(work *Work) *domain.Record {
	doi := domain.NormalizeDOI(work.DOI)

	var title string
	if len(work.Title) > 0 {
		title = strings.TrimSpace(work.Title[0])
	}

	authors := make([]domain.Author, 0, len(work.Author))
	for _, a := range work.Author {
		name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if name == "" {
			continue
		}
		authors = append(authors, domain.Author{Name: name})
	}

	var year int
	if len(work.Issued.DateParts) > 0 && len(work.Issued.DateParts[0]) > 0 {
		year = work.Issued.DateParts[0][0]
	}

	var journal string
	if len(work.ContainerTitle) > 0 {
		journal = work.ContainerTitle[0]
	}

	record := &domain.Record{
		Title:          title,
		Authors:        authors,
		Year:           year,
		Journal:        journal,
		DOI:            doi,
		OriginProvider: domain.SourceTypeCrossref,
		CitationCount:  work.IsReferencedByCount,
	}

	// Crossref's URL field is the publisher landing page; fall back to the
	// DOI resolver when absent.
	link := work.URL
	if link == "" && doi != "" {
		link = "https://doi.org/" + doi
	}
	if link != "" {
		record.AddSource(domain.SourceLink{
			URL:        link,
			Label:      domain.LabelPublisherPage,
			AccessType: domain.AccessPaywalled,
		})
	}

	return record
}
