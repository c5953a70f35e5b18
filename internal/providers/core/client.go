package core

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
	// DefaultBaseURL is the default CORE API base URL.
	DefaultBaseURL = "https://core.ac.uk/api-v2"

	// DefaultRateLimit is the default rate limit for requests per second.
	DefaultRateLimit = 2.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 2

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the default maximum results per request.
	DefaultMaxResults = 20

	// readerBaseURL is the base URL for CORE's web reader pages.
	readerBaseURL = "https://core.ac.uk/reader/"

	// sourceName is the human-readable name for this source.
	sourceName = "CORE"
)

// Config holds configuration for the CORE client.
type Config struct {
	// BaseURL is the CORE API base URL.
	BaseURL string

	// APIKey is the CORE API key.
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

// Client implements the providers.Source interface for CORE.
type Client struct {
	config     Config
	httpClient *providers.HTTPClient
}

// Ensure Client implements the Source interface.
var _ providers.Source = (*Client)(nil)

// New creates a new CORE client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := providers.NewHTTPClient(providers.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new CORE client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *providers.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Search queries CORE for articles matching the given parameters.
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
		records = append(records, c.articleToRecord(&searchResp.Data[i]))
	}

	return &providers.SearchResult{
		Records:        records,
		TotalResults:   searchResp.TotalHits,
		Source:         domain.SourceTypeCORE,
		SearchDuration: time.Since(startTime),
	}, nil
}

// SourceType returns the source type identifier.
func (c *Client) SourceType() domain.SourceType {
	return domain.SourceTypeCORE
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// buildSearchURL constructs the article search URL. The CORE v2 API embeds
// the query in the path rather than a query parameter.
func (c *Client) buildSearchURL(params providers.SearchParams) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = strings.TrimRight(baseURL.Path, "/") + "/articles/search/" + url.PathEscape(params.Query)

	query := url.Values{}

	pageSize := params.Limit
	if pageSize == 0 {
		pageSize = c.config.MaxResults
	}
	query.Set("pageSize", strconv.Itoa(pageSize))

	if c.config.APIKey != "" {
		query.Set("apiKey", c.config.APIKey)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

// articleToRecord converts a CORE article to a domain Record.
func (c *Client) articleToRecord(article *Article) *domain.Record {
	authors := make([]domain.Author, 0, len(article.Authors))
	for _, name := range article.Authors {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		authors = append(authors, domain.Author{Name: name})
	}

	record := &domain.Record{
		Title:          strings.TrimSpace(article.Title),
		Authors:        authors,
		Year:           article.Year,
		Journal:        article.Publisher,
		DOI:            domain.NormalizeDOI(article.DOI),
		OriginProvider: domain.SourceTypeCORE,
	}

	if article.ID != "" {
		record.AddSource(domain.SourceLink{
			URL:        readerBaseURL + article.ID,
			Label:      domain.LabelRepositoryVersion,
			AccessType: domain.AccessOpenAccess,
		})
	}

	if article.DownloadURL != "" {
		record.AddSource(domain.SourceLink{
			URL:        article.DownloadURL,
			Label:      domain.LabelOpenAccessPDF,
			AccessType: domain.AccessOpenAccess,
		})
	}

	return record
}
