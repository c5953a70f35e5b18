// Package config provides configuration management for the scholarly search service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the scholarly search service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// Search contains query handling settings.
	Search SearchConfig `mapstructure:"search"`
	// Providers contains metadata provider API configurations.
	Providers ProvidersConfig `mapstructure:"providers"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
}

// SearchConfig holds query handling configuration.
type SearchConfig struct {
	// DefaultLimit is the per-provider result limit when the request
	// does not specify one.
	DefaultLimit int `mapstructure:"default_limit"`
	// MaxLimit is the largest per-provider result limit a request may ask for.
	MaxLimit int `mapstructure:"max_limit"`
	// Timeout bounds the whole provider fan-out for one query.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProvidersConfig holds configuration for all metadata provider APIs.
type ProvidersConfig struct {
	// Crossref contains Crossref API settings.
	Crossref ProviderConfig `mapstructure:"crossref"`
	// OpenAlex contains OpenAlex API settings.
	OpenAlex ProviderConfig `mapstructure:"openalex"`
	// SemanticScholar contains Semantic Scholar API settings.
	SemanticScholar ProviderConfig `mapstructure:"semantic_scholar"`
	// ArXiv contains arXiv API settings.
	ArXiv ProviderConfig `mapstructure:"arxiv"`
	// CORE contains CORE API settings.
	CORE ProviderConfig `mapstructure:"core"`
}

// ProviderConfig holds configuration for a single metadata provider API.
type ProviderConfig struct {
	// Enabled controls whether this provider is queried.
	Enabled bool `mapstructure:"enabled"`
	// APIKey is the API key (loaded from environment variable, e.g.
	// SCHOLARSEARCH_PROVIDERS_SEMANTIC_SCHOLAR_API_KEY).
	APIKey string `mapstructure:"-"`
	// BaseURL is the API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Email is the contact email sent to providers with polite pools
	// (Crossref, OpenAlex).
	Email string `mapstructure:"email"`
	// Timeout is the timeout for API calls.
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum requests per second.
	RateLimit float64 `mapstructure:"rate_limit"`
	// MaxResults is the maximum results per query.
	MaxResults int `mapstructure:"max_results"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("SCHOLARSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if present
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scholarly-search-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Load secrets exclusively from environment variables.
	// These fields use mapstructure:"-" to prevent loading from config files.
	loadSecrets(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadSecrets populates secret fields exclusively from environment variables.
// These fields are tagged with mapstructure:"-" to prevent loading from config files.
func loadSecrets(cfg *Config) {
	cfg.Providers.SemanticScholar.APIKey = os.Getenv("SCHOLARSEARCH_PROVIDERS_SEMANTIC_SCHOLAR_API_KEY")
	cfg.Providers.CORE.APIKey = os.Getenv("SCHOLARSEARCH_PROVIDERS_CORE_API_KEY")
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Search defaults
	v.SetDefault("search.default_limit", 20)
	v.SetDefault("search.max_limit", 100)
	v.SetDefault("search.timeout", "45s")

	// Providers defaults - Crossref
	// API keys are loaded exclusively from environment variables (see loadSecrets).
	v.SetDefault("providers.crossref.enabled", true)
	v.SetDefault("providers.crossref.base_url", "https://api.crossref.org")
	v.SetDefault("providers.crossref.email", "")
	v.SetDefault("providers.crossref.timeout", "30s")
	v.SetDefault("providers.crossref.rate_limit", 10.0)
	v.SetDefault("providers.crossref.max_results", 20)

	// Providers defaults - OpenAlex
	v.SetDefault("providers.openalex.enabled", true)
	v.SetDefault("providers.openalex.base_url", "https://api.openalex.org")
	v.SetDefault("providers.openalex.email", "")
	v.SetDefault("providers.openalex.timeout", "30s")
	v.SetDefault("providers.openalex.rate_limit", 10.0)
	v.SetDefault("providers.openalex.max_results", 25)

	// Providers defaults - Semantic Scholar
	v.SetDefault("providers.semantic_scholar.enabled", true)
	v.SetDefault("providers.semantic_scholar.base_url", "https://api.semanticscholar.org/graph/v1")
	v.SetDefault("providers.semantic_scholar.timeout", "30s")
	v.SetDefault("providers.semantic_scholar.rate_limit", 1.0) // 1 req/sec without an API key
	v.SetDefault("providers.semantic_scholar.max_results", 20)

	// Providers defaults - arXiv
	v.SetDefault("providers.arxiv.enabled", true)
	v.SetDefault("providers.arxiv.base_url", "https://export.arxiv.org/api")
	v.SetDefault("providers.arxiv.timeout", "30s")
	v.SetDefault("providers.arxiv.rate_limit", 3.0) // arXiv recommends max 3 req/sec
	v.SetDefault("providers.arxiv.max_results", 20)

	// Providers defaults - CORE
	v.SetDefault("providers.core.enabled", true)
	v.SetDefault("providers.core.base_url", "https://core.ac.uk/api-v2")
	v.SetDefault("providers.core.timeout", "30s")
	v.SetDefault("providers.core.rate_limit", 2.0)
	v.SetDefault("providers.core.max_results", 20)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	// Validate search limits
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search default_limit must be positive")
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search max_limit (%d) must be >= default_limit (%d)", c.Search.MaxLimit, c.Search.DefaultLimit)
	}

	// At least one provider has to be enabled for searches to return anything.
	providers := []ProviderConfig{
		c.Providers.Crossref,
		c.Providers.OpenAlex,
		c.Providers.SemanticScholar,
		c.Providers.ArXiv,
		c.Providers.CORE,
	}
	anyEnabled := false
	for _, p := range providers {
		if p.Enabled {
			anyEnabled = true
			break
		}
	}
	if !anyEnabled {
		return fmt.Errorf("at least one provider must be enabled")
	}

	for _, p := range providers {
		if p.Enabled && p.RateLimit <= 0 {
			return fmt.Errorf("provider rate_limit must be positive")
		}
	}

	return nil
}
