package hearthstone

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mselser95/hearthstone-cards/pkg/cache"
	"github.com/mselser95/hearthstone-cards/pkg/types"
	"go.uber.org/zap"
)

// Fixed card search filter: legendary cards costing 7 to 10 mana, first page of 10.
const (
	cardsManaCost = "7,8,9,10"
	cardsRarity   = "legendary"
	cardsPageSize = "10"
	cardsSort     = "id:asc"
)

var errMissingField = errors.New("response missing required field")

// Fetcher decodes a GET response from the Blizzard API.
type Fetcher interface {
	GetJSON(ctx context.Context, op string, endpoint string, out interface{}) error
}

// Service runs the cached card and metadata queries.
type Service struct {
	fetcher Fetcher
	cache   cache.Cache
	baseURL string
	locale  string
	logger  *zap.Logger
}

// Config holds service configuration.
type Config struct {
	Fetcher Fetcher
	Cache   cache.Cache
	BaseURL string
	Locale  string
	Logger  *zap.Logger
}

// NewService creates a new card query service.
func NewService(cfg *Config) (*Service, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	locale := cfg.Locale
	if locale == "" {
		locale = "en_US"
	}

	return &Service{
		fetcher: cfg.Fetcher,
		cache:   cfg.Cache,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		locale:  locale,
		logger:  logger,
	}, nil
}

// Cards returns the legendary 7-10 mana cards of class, sorted by id.
func (s *Service) Cards(ctx context.Context, class string) ([]types.Card, error) {
	if strings.TrimSpace(class) == "" {
		return nil, &types.NotFoundError{Resource: "card class", Name: class}
	}

	return cache.GetOrCompute(s.cache, "cards:"+class, func() ([]types.Card, error) {
		return s.fetchCards(ctx, class)
	})
}

func (s *Service) fetchCards(ctx context.Context, class string) ([]types.Card, error) {
	params := url.Values{}
	params.Set("locale", s.locale)
	params.Set("class", class)
	params.Set("manaCost", cardsManaCost)
	params.Set("rarity", cardsRarity)
	params.Set("pageSize", cardsPageSize)
	params.Set("sort", cardsSort)

	endpoint := fmt.Sprintf("%s/hearthstone/cards?%s", s.baseURL, params.Encode())

	var resp types.CardsResponse
	err := s.fetcher.GetJSON(ctx, "get-cards", endpoint, &resp)
	if err != nil {
		var notFoundErr *types.NotFoundError
		if errors.As(err, &notFoundErr) {
			return nil, &types.NotFoundError{Resource: "card class", Name: class, Err: err}
		}
		return nil, fmt.Errorf("get cards: %w", err)
	}

	if resp.Cards == nil {
		return nil, &types.UpstreamError{Op: "get-cards", Err: fmt.Errorf("%w: cards", errMissingField)}
	}

	s.logger.Debug("cards-fetched",
		zap.String("class", class),
		zap.Int("count", len(*resp.Cards)),
		zap.Int("card-count", resp.CardCount))

	return *resp.Cards, nil
}

// Metadata returns the id to name table for one metadata kind.
func (s *Service) Metadata(ctx context.Context, kind types.MetadataKind) (types.MetadataTable, error) {
	if !kind.Valid() {
		return nil, &types.NotFoundError{Resource: "metadata kind", Name: string(kind)}
	}

	return cache.GetOrCompute(s.cache, "metadata:"+string(kind), func() (types.MetadataTable, error) {
		return s.fetchMetadata(ctx, kind)
	})
}

func (s *Service) fetchMetadata(ctx context.Context, kind types.MetadataKind) (types.MetadataTable, error) {
	params := url.Values{}
	params.Set("locale", s.locale)

	endpoint := fmt.Sprintf("%s/hearthstone/metadata/%s?%s", s.baseURL, url.PathEscape(string(kind)), params.Encode())
	op := "get-metadata-" + string(kind)

	var entries []types.MetadataEntry
	err := s.fetcher.GetJSON(ctx, op, endpoint, &entries)
	if err != nil {
		return nil, fmt.Errorf("get %s metadata: %w", kind, err)
	}

	table := make(types.MetadataTable, len(entries))
	for i, entry := range entries {
		if entry.ID == nil {
			return nil, &types.UpstreamError{Op: op, Err: fmt.Errorf("%w: id (entry %d)", errMissingField, i)}
		}
		table[*entry.ID] = entry.Name
	}

	s.logger.Debug("metadata-fetched",
		zap.String("kind", string(kind)),
		zap.Int("count", len(table)))

	return table, nil
}

// AllMetadata fetches the four tables joined into the card table.
// The first failure is returned and the remaining kinds are not fetched.
func (s *Service) AllMetadata(ctx context.Context) (types.Metadata, error) {
	var md types.Metadata

	for _, kind := range types.MetadataKinds() {
		table, err := s.Metadata(ctx, kind)
		if err != nil {
			return types.Metadata{}, err
		}

		switch kind {
		case types.MetadataSets:
			md.Sets = table
		case types.MetadataClasses:
			md.Classes = table
		case types.MetadataTypes:
			md.Types = table
		case types.MetadataRarities:
			md.Rarities = table
		}
	}

	return md, nil
}
