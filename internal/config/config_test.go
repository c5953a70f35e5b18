package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars removes service env vars so tests see a clean environment.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SCHOLARSEARCH_") {
			key := strings.SplitN(env, "=", 2)[0]
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Server defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9091, cfg.Server.MetricsPort)

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Metrics defaults
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	// Search defaults
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxLimit)

	// Provider defaults
	assert.True(t, cfg.Providers.Crossref.Enabled)
	assert.Equal(t, "https://api.crossref.org", cfg.Providers.Crossref.BaseURL)
	assert.True(t, cfg.Providers.OpenAlex.Enabled)
	assert.Equal(t, 25, cfg.Providers.OpenAlex.MaxResults)
	assert.True(t, cfg.Providers.SemanticScholar.Enabled)
	assert.Equal(t, 1.0, cfg.Providers.SemanticScholar.RateLimit)
	assert.True(t, cfg.Providers.ArXiv.Enabled)
	assert.Equal(t, 3.0, cfg.Providers.ArXiv.RateLimit)
	assert.True(t, cfg.Providers.CORE.Enabled)
	assert.Equal(t, "https://core.ac.uk/api-v2", cfg.Providers.CORE.BaseURL)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("SCHOLARSEARCH_SERVER_HTTP_PORT", "8888")
	t.Setenv("SCHOLARSEARCH_LOGGING_LEVEL", "debug")
	t.Setenv("SCHOLARSEARCH_SEARCH_DEFAULT_LIMIT", "10")
	t.Setenv("SCHOLARSEARCH_PROVIDERS_CROSSREF_EMAIL", "ops@example.org")
	t.Setenv("SCHOLARSEARCH_PROVIDERS_CORE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8888, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, "ops@example.org", cfg.Providers.Crossref.Email)
	assert.False(t, cfg.Providers.CORE.Enabled)
}

func TestLoad_Secrets(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("SCHOLARSEARCH_PROVIDERS_SEMANTIC_SCHOLAR_API_KEY", "s2-secret")
	t.Setenv("SCHOLARSEARCH_PROVIDERS_CORE_API_KEY", "core-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s2-secret", cfg.Providers.SemanticScholar.APIKey)
	assert.Equal(t, "core-secret", cfg.Providers.CORE.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Server.HTTPPort = 8080
		cfg.Server.MetricsPort = 9091
		cfg.Logging.Level = "info"
		cfg.Search.DefaultLimit = 20
		cfg.Search.MaxLimit = 100
		cfg.Providers.Crossref = ProviderConfig{Enabled: true, RateLimit: 10}
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name        string
		modifyFunc  func(*Config)
		expectedErr string
	}{
		{
			name:        "invalid HTTP port",
			modifyFunc:  func(c *Config) { c.Server.HTTPPort = 0 },
			expectedErr: "invalid HTTP port",
		},
		{
			name:        "invalid metrics port",
			modifyFunc:  func(c *Config) { c.Server.MetricsPort = 70000 },
			expectedErr: "invalid metrics port",
		},
		{
			name:        "invalid log level",
			modifyFunc:  func(c *Config) { c.Logging.Level = "verbose" },
			expectedErr: "invalid log level",
		},
		{
			name:        "non-positive default limit",
			modifyFunc:  func(c *Config) { c.Search.DefaultLimit = 0 },
			expectedErr: "default_limit must be positive",
		},
		{
			name:        "max limit below default",
			modifyFunc:  func(c *Config) { c.Search.MaxLimit = 5 },
			expectedErr: "max_limit",
		},
		{
			name:        "no providers enabled",
			modifyFunc:  func(c *Config) { c.Providers.Crossref.Enabled = false },
			expectedErr: "at least one provider",
		},
		{
			name:        "enabled provider without rate limit",
			modifyFunc:  func(c *Config) { c.Providers.Crossref.RateLimit = 0 },
			expectedErr: "rate_limit must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modifyFunc(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestServerConfig_Addresses(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", HTTPPort: 8080, MetricsPort: 9091}

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddress())
	assert.Equal(t, "127.0.0.1:9091", cfg.MetricsAddress())
}
