package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mselser95/hearthstone-cards/internal/auth"
	"github.com/mselser95/hearthstone-cards/internal/cardtable"
	"github.com/mselser95/hearthstone-cards/internal/hearthstone"
	"github.com/mselser95/hearthstone-cards/pkg/cache"
	"github.com/mselser95/hearthstone-cards/pkg/config"
	"github.com/mselser95/hearthstone-cards/pkg/healthprobe"
	"github.com/mselser95/hearthstone-cards/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	sharedCache, err := setupCache(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	httpClient := setupHTTPClient(cfg)

	tokens, err := setupTokenProvider(cfg, logger, httpClient, sharedCache)
	if err != nil {
		sharedCache.Close()
		cancel()
		return nil, fmt.Errorf("setup token provider: %w", err)
	}

	service, err := setupCardService(cfg, logger, httpClient, tokens, sharedCache)
	if err != nil {
		sharedCache.Close()
		cancel()
		return nil, fmt.Errorf("setup card service: %w", err)
	}

	healthChecker := setupHealthChecker(logger, tokens)
	httpServer := setupHTTPServer(cfg, logger, healthChecker, service)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		cache:         sharedCache,
		service:       service,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Lookup builds the joined card table for a class without going through HTTP.
func (a *App) Lookup(ctx context.Context, class string) ([]cardtable.Row, error) {
	return cardtable.Build(ctx, a.service, class)
}

func setupCache(cfg *config.Config, logger *zap.Logger) (*cache.RistrettoCache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		MaxItems:    cfg.CacheMaxItems,
		DefaultTTL:  cfg.CacheTTL,
		BufferItems: 64,
		Logger:      logger,
	})
}

func setupHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPClientTimeout}
}

func setupTokenProvider(
	cfg *config.Config,
	logger *zap.Logger,
	httpClient *http.Client,
	sharedCache cache.Cache,
) (*auth.Provider, error) {
	return auth.NewProvider(&auth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.OAuthTokenURL,
		HTTPClient:   httpClient,
		Cache:        sharedCache,
		Logger:       logger,
	})
}

func setupCardService(
	cfg *config.Config,
	logger *zap.Logger,
	httpClient *http.Client,
	tokens auth.TokenSource,
	sharedCache cache.Cache,
) (*hearthstone.Service, error) {
	return hearthstone.NewService(&hearthstone.Config{
		Fetcher: hearthstone.NewClient(tokens, httpClient, logger),
		Cache:   sharedCache,
		BaseURL: cfg.APIBaseURL,
		Locale:  cfg.APILocale,
		Logger:  logger,
	})
}

// setupHealthChecker gates readiness on obtaining an access token.
func setupHealthChecker(logger *zap.Logger, tokens auth.TokenSource) *healthprobe.HealthChecker {
	hc := healthprobe.New(logger)
	hc.AddCheck("upstream-auth", func(ctx context.Context) error {
		_, err := tokens.Token(ctx)
		return err
	})
	return hc
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	source cardtable.Source,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:              cfg.HTTPPort,
		Logger:            logger,
		HealthChecker:     healthChecker,
		Cards:             source,
		ErrorStatusCompat: cfg.ErrorStatusCompat,
	})
}
