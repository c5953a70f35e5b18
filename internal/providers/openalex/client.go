package openalex

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
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// The polite pool (with email) allows higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the default maximum results per request.
	DefaultMaxResults = 25

	// maxPerPage is the OpenAlex API page size limit.
	maxPerPage = 200

	// sourceName is the human-readable name for this source.
	sourceName = "OpenAlex"
)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	BaseURL string

	// Email is the contact email for the polite pool.
	// Providing an email grants access to higher rate limits.
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

// Client implements the providers.Source and providers.AuthorSource
// interfaces for OpenAlex.
type Client struct {
	config     Config
	httpClient *providers.HTTPClient
}

// Ensure Client implements both interfaces.
var (
	_ providers.Source       = (*Client)(nil)
	_ providers.AuthorSource = (*Client)(nil)
)

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := providers.NewHTTPClient(providers.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "ScholarlySearchService/1.0 (mailto:" + cfg.Email + ")",
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new OpenAlex client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *providers.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Search queries OpenAlex for works matching the given parameters.
func (c *Client) Search(ctx context.Context, params providers.SearchParams) (*providers.SearchResult, error) {
	startTime := time.Now()

	searchURL, err := c.buildSearchURL("/works", params)
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

	records := make([]*domain.Record, 0, len(searchResp.Results))
	for i := range searchResp.Results {
		records = append(records, c.workToRecord(&searchResp.Results[i]))
	}

	return &providers.SearchResult{
		Records:        records,
		TotalResults:   searchResp.Meta.Count,
		Source:         domain.SourceTypeOpenAlex,
		SearchDuration: time.Since(startTime),
	}, nil
}

// SearchAuthors queries OpenAlex for authors matching the given parameters.
func (c *Client) SearchAuthors(ctx context.Context, params providers.SearchParams) ([]*domain.Researcher, error) {
	searchURL, err := c.buildSearchURL("/authors", params)
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

	var authorsResp AuthorsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&authorsResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	researchers := make([]*domain.Researcher, 0, len(authorsResp.Results))
	for i := range authorsResp.Results {
		researchers = append(researchers, entryToResearcher(&authorsResp.Results[i]))
	}

	return researchers, nil
}

// SourceType returns the source type identifier.
func (c *Client) SourceType() domain.SourceType {
	return domain.SourceTypeOpenAlex
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// buildSearchURL constructs a search URL for the given endpoint path.
func (c *Client) buildSearchURL(path string, params providers.SearchParams) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = path

	query := url.Values{}
	query.Set("search", params.Query)

	perPage := params.Limit
	if perPage == 0 {
		perPage = c.config.MaxResults
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	query.Set("per_page", strconv.Itoa(perPage))

	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

// workToRecord converts an OpenAlex work to a domain Record.
func (c *Client) workToRecord(work *Work) *domain.Record {
	authors := make([]domain.Author, 0, len(work.Authorships))
	for _, authorship := range work.Authorships {
		name := strings.TrimSpace(authorship.Author.DisplayName)
		if name == "" {
			continue
		}
		authors = append(authors, domain.Author{Name: name})
	}

	var journal string
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		journal = work.PrimaryLocation.Source.DisplayName
	}

	isOA := work.OpenAccess != nil && work.OpenAccess.IsOA

	record := &domain.Record{
		Title:          strings.TrimSpace(work.DisplayName),
		Authors:        authors,
		Year:           work.PublicationYear,
		Journal:        journal,
		DOI:            domain.NormalizeDOI(work.DOI),
		OriginProvider: domain.SourceTypeOpenAlex,
		CitationCount:  work.CitedByCount,
		RelevanceScore: work.RelevanceScore,
	}

	// Primary location first so the publisher page is the leading source.
	if work.PrimaryLocation != nil {
		if work.PrimaryLocation.LandingPageURL != "" {
			record.AddSource(domain.SourceLink{
				URL:        work.PrimaryLocation.LandingPageURL,
				Label:      domain.LabelPublisherPage,
				AccessType: accessType(isOA),
			})
		}
		if work.PrimaryLocation.PDFURL != "" {
			record.AddSource(domain.SourceLink{
				URL:        work.PrimaryLocation.PDFURL,
				Label:      domain.LabelOpenAccessPDF,
				AccessType: domain.AccessOpenAccess,
			})
		}
	}

	// Additional locations: repositories and mirrors. AddSource drops
	// URLs already contributed by the primary location.
	for i := range work.Locations {
		loc := &work.Locations[i]
		if loc.LandingPageURL != "" {
			record.AddSource(domain.SourceLink{
				URL:        loc.LandingPageURL,
				Label:      locationLabel(loc),
				AccessType: accessType(loc.IsOA),
			})
		}
		if loc.PDFURL != "" {
			record.AddSource(domain.SourceLink{
				URL:        loc.PDFURL,
				Label:      domain.LabelOpenAccessPDF,
				AccessType: domain.AccessOpenAccess,
			})
		}
	}

	return record
}

// locationLabel maps an OpenAlex location to a source link label.
func locationLabel(loc *Location) string {
	if loc.Source != nil && loc.Source.Type == "repository" {
		return domain.LabelRepositoryVersion
	}
	return domain.LabelPublisherPage
}

// accessType maps an open access flag to the link access type vocabulary.
func accessType(isOA bool) domain.AccessType {
	if isOA {
		return domain.AccessOpenAccess
	}
	return domain.AccessPaywalled
}

// entryToResearcher converts an OpenAlex author entry to a domain Researcher.
func entryToResearcher(entry *AuthorEntry) *domain.Researcher {
	r := &domain.Researcher{
		Name:          entry.DisplayName,
		ID:            entry.ID,
		CitationCount: entry.CitedByCount,
		PaperCount:    entry.WorksCount,
		URL:           entry.ID,
		Source:        domain.SourceTypeOpenAlex,
	}
	if entry.SummaryStats != nil {
		r.HIndex = entry.SummaryStats.HIndex
	}
	if entry.LastKnownInstitution != nil {
		r.Affiliation = entry.LastKnownInstitution.DisplayName
	}
	return r
}
