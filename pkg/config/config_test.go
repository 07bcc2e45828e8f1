package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		LogLevel:          "info",
		HTTPPort:          "5000",
		ClientID:          "id",
		ClientSecret:      "secret",
		OAuthTokenURL:     "https://us.battle.net/oauth/token",
		APIBaseURL:        "https://us.api.blizzard.com",
		APILocale:         "en_US",
		HTTPClientTimeout: 10 * time.Second,
		CacheTTL:          time.Minute,
		CacheMaxItems:     100,
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("client_id", "my-id")
	t.Setenv("client_secret", "my-secret")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "my-id", cfg.ClientID)
	assert.Equal(t, "my-secret", cfg.ClientSecret)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "https://us.battle.net/oauth/token", cfg.OAuthTokenURL)
	assert.Equal(t, "https://us.api.blizzard.com", cfg.APIBaseURL)
	assert.Equal(t, "en_US", cfg.APILocale)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, int64(100), cfg.CacheMaxItems)
	assert.False(t, cfg.ErrorStatusCompat)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("client_id", "my-id")
	t.Setenv("client_secret", "my-secret")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("API_BASE_URL", "https://eu.api.blizzard.com")
	t.Setenv("API_LOCALE", "de_DE")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CACHE_MAX_ITEMS", "10")
	t.Setenv("ERROR_STATUS_COMPAT", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://eu.api.blizzard.com", cfg.APIBaseURL)
	assert.Equal(t, "de_DE", cfg.APILocale)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, int64(10), cfg.CacheMaxItems)
	assert.True(t, cfg.ErrorStatusCompat)
}

func TestLoadFromEnv_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{name: "missing-both"},
		{name: "missing-secret", id: "my-id"},
		{name: "missing-id", secret: "my-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("client_id", tt.id)
			t.Setenv("client_secret", tt.secret)

			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("client_id", "my-id")
	t.Setenv("client_secret", "my-secret")
	t.Setenv("CACHE_TTL", "soon")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty-port",
			mutate:  func(c *Config) { c.HTTPPort = "" },
			wantErr: "HTTP_PORT cannot be empty",
		},
		{
			name:    "empty-secret",
			mutate:  func(c *Config) { c.ClientSecret = "" },
			wantErr: "client_id and client_secret are required",
		},
		{
			name:    "token-url-without-scheme",
			mutate:  func(c *Config) { c.OAuthTokenURL = "us.battle.net/oauth/token" },
			wantErr: `OAUTH_TOKEN_URL must be an http(s) URL, got "us.battle.net/oauth/token"`,
		},
		{
			name:    "api-url-without-host",
			mutate:  func(c *Config) { c.APIBaseURL = "https://" },
			wantErr: `API_BASE_URL must include a host, got "https://"`,
		},
		{
			name:    "empty-locale",
			mutate:  func(c *Config) { c.APILocale = "" },
			wantErr: "API_LOCALE cannot be empty",
		},
		{
			name:    "zero-timeout",
			mutate:  func(c *Config) { c.HTTPClientTimeout = 0 },
			wantErr: "HTTP_CLIENT_TIMEOUT must be positive, got 0s",
		},
		{
			name:    "negative-ttl",
			mutate:  func(c *Config) { c.CacheTTL = -time.Second },
			wantErr: "CACHE_TTL must be positive, got -1s",
		},
		{
			name:    "zero-capacity",
			mutate:  func(c *Config) { c.CacheMaxItems = 0 },
			wantErr: "CACHE_MAX_ITEMS must be positive, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
