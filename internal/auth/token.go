package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mselser95/hearthstone-cards/pkg/cache"
	"github.com/mselser95/hearthstone-cards/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenSource yields a bearer token for the Blizzard API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Provider exchanges client credentials for an access token and caches it.
// The token is reused until the cache TTL expires, whatever its own expiry.
type Provider struct {
	oauth      clientcredentials.Config
	httpClient *http.Client
	cache      cache.Cache
	cacheKey   string
	logger     *zap.Logger
}

// Config holds provider configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	HTTPClient   *http.Client
	Cache        cache.Cache
	Logger       *zap.Logger
}

// NewProvider creates a token provider for one credential pair.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &types.AuthError{Op: "configure provider", Err: errors.New("client id and secret are required")}
	}
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("token url is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		oauth: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		cache:      cfg.Cache,
		cacheKey:   tokenCacheKey(cfg.ClientID, cfg.ClientSecret),
		logger:     logger,
	}, nil
}

// Token returns the cached access token, exchanging credentials on a miss.
func (p *Provider) Token(ctx context.Context) (string, error) {
	return cache.GetOrCompute(p.cache, p.cacheKey, func() (string, error) {
		return p.fetch(ctx)
	})
}

func (p *Provider) fetch(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	start := time.Now()
	tok, err := p.oauth.Token(ctx)
	TokenFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		classified := classifyTokenError(err)
		TokenFetchErrorsTotal.WithLabelValues(string(types.KindOf(classified))).Inc()
		p.logger.Warn("token-fetch-failed",
			zap.String("token-url", p.oauth.TokenURL),
			zap.String("kind", string(types.KindOf(classified))),
			zap.Error(err))
		return "", classified
	}

	if tok.AccessToken == "" {
		TokenFetchErrorsTotal.WithLabelValues(string(types.KindAuth)).Inc()
		return "", &types.AuthError{Op: "fetch token", Err: errors.New("response missing access_token")}
	}

	p.logger.Info("token-fetched",
		zap.String("client-id", p.oauth.ClientID),
		zap.Time("expiry", tok.Expiry))

	return tok.AccessToken, nil
}

// classifyTokenError separates credential rejections from transport failures.
func classifyTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return &types.UpstreamError{Op: "fetch token", StatusCode: retrieveErr.Response.StatusCode, Err: err}
		}
		return &types.AuthError{Op: "fetch token", Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &types.UpstreamError{Op: "fetch token", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &types.UpstreamError{Op: "fetch token", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &types.UpstreamError{Op: "fetch token", Err: err}
	}

	// Missing access_token or an unparsable body.
	return &types.AuthError{Op: "fetch token", Err: err}
}

// tokenCacheKey keys the token on the credential pair without storing the secret.
func tokenCacheKey(clientID, clientSecret string) string {
	digest := sha256.Sum256([]byte(clientSecret))
	return "token:" + clientID + ":" + hex.EncodeToString(digest[:8])
}
