package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"5000"`

	// Battle.net credentials
	ClientID     string `env:"client_id,required,notEmpty"`
	ClientSecret string `env:"client_secret,required,notEmpty"`

	// Blizzard API
	OAuthTokenURL     string        `env:"OAUTH_TOKEN_URL" envDefault:"https://us.battle.net/oauth/token"`
	APIBaseURL        string        `env:"API_BASE_URL" envDefault:"https://us.api.blizzard.com"`
	APILocale         string        `env:"API_LOCALE" envDefault:"en_US"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`

	// Cache
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	CacheMaxItems int64         `env:"CACHE_MAX_ITEMS" envDefault:"100"`

	// ErrorStatusCompat answers every failed card request with 200 OK,
	// for clients built against the legacy always-200 behaviour.
	ErrorStatusCompat bool `env:"ERROR_STATUS_COMPAT" envDefault:"false"`
}

// LoadFromEnv loads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
func LoadFromEnv() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	err = env.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("client_id and client_secret are required")
	}

	err := validateURL("OAUTH_TOKEN_URL", c.OAuthTokenURL)
	if err != nil {
		return err
	}

	err = validateURL("API_BASE_URL", c.APIBaseURL)
	if err != nil {
		return err
	}

	if c.APILocale == "" {
		return fmt.Errorf("API_LOCALE cannot be empty")
	}

	if c.HTTPClientTimeout <= 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive, got %v", c.HTTPClientTimeout)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.CacheTTL)
	}

	if c.CacheMaxItems <= 0 {
		return fmt.Errorf("CACHE_MAX_ITEMS must be positive, got %d", c.CacheMaxItems)
	}

	return nil
}

func validateURL(name string, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, raw)
	}

	return nil
}
