package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RistrettoCache is a cache implementation using Ristretto.
// Every entry costs 1, so MaxItems bounds the number of live entries.
type RistrettoCache struct {
	cache      *ristretto.Cache
	defaultTTL time.Duration
	loads      singleflight.Group
	closeOnce  sync.Once
	logger     *zap.Logger
}

// RistrettoConfig holds configuration for Ristretto cache.
type RistrettoConfig struct {
	MaxItems    int64         // Maximum number of entries held at once
	DefaultTTL  time.Duration // TTL applied by GetOrLoad
	BufferItems int64         // Number of keys per Get buffer
	Logger      *zap.Logger
}

// NewRistrettoCache creates a new Ristretto-backed cache.
func NewRistrettoCache(cfg *RistrettoConfig) (*RistrettoCache, error) {
	if cfg.MaxItems <= 0 {
		return nil, fmt.Errorf("max items must be positive, got %d", cfg.MaxItems)
	}
	if cfg.DefaultTTL <= 0 {
		return nil, fmt.Errorf("default ttl must be positive, got %v", cfg.DefaultTTL)
	}

	bufferItems := cfg.BufferItems
	if bufferItems == 0 {
		bufferItems = 64
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        cfg.MaxItems * 10, // 10x max items
		MaxCost:            cfg.MaxItems,
		BufferItems:        bufferItems,
		IgnoreInternalCost: true,
		Metrics:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	return &RistrettoCache{
		cache:      cache,
		defaultTTL: cfg.DefaultTTL,
		logger:     logger,
	}, nil
}

// Get retrieves a value from the cache.
func (r *RistrettoCache) Get(key string) (interface{}, bool) {
	value, found := r.cache.Get(key)
	if found {
		CacheHitsTotal.Inc()
		r.logger.Debug("cache-hit", zap.String("key", key))
	} else {
		CacheMissesTotal.Inc()
		r.logger.Debug("cache-miss", zap.String("key", key))
	}
	return value, found
}

// Set stores a value in the cache with a TTL and waits until the write is
// visible to Get. Returns false if Ristretto dropped or rejected the write.
func (r *RistrettoCache) Set(key string, value interface{}, ttl time.Duration) bool {
	// Cost = 1 (we're counting items, not bytes)
	success := r.cache.SetWithTTL(key, value, 1, ttl)
	if !success {
		r.logger.Debug("cache-set-dropped", zap.String("key", key))
		return false
	}

	// A buffered write can still be refused by the admission policy.
	r.cache.Wait()
	if _, found := r.cache.Get(key); !found {
		r.logger.Debug("cache-set-rejected", zap.String("key", key))
		return false
	}

	CacheSetsTotal.Inc()
	r.logger.Debug("cache-set",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return true
}

// GetOrLoad returns the cached value for key, loading it on a miss.
// Concurrent misses for the same key share a single load. A shared load
// that was cancelled is rerun with the caller's own load.
func (r *RistrettoCache) GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	if value, found := r.Get(key); found {
		return value, nil
	}

	value, err, shared := r.loads.Do(key, func() (interface{}, error) {
		return r.runLoad(key, load)
	})
	if err != nil && shared && isCancellation(err) {
		r.logger.Debug("cache-load-retry", zap.String("key", key), zap.Error(err))
		value, err = r.runLoad(key, load)
	}
	if err != nil {
		r.logger.Debug("cache-load-failed",
			zap.String("key", key),
			zap.Bool("shared", shared),
			zap.Error(err))
		return nil, err
	}

	return value, nil
}

func (r *RistrettoCache) runLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	start := time.Now()
	value, err := load()
	CacheLoadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		CacheLoadErrorsTotal.Inc()
		return nil, err
	}

	r.Set(key, value, r.defaultTTL)
	return value, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Delete removes a value from the cache.
func (r *RistrettoCache) Delete(key string) {
	r.cache.Del(key)
	CacheDeletesTotal.Inc()
	r.logger.Debug("cache-delete", zap.String("key", key))
}

// Clear removes all values from the cache.
func (r *RistrettoCache) Clear() {
	r.cache.Clear()
	r.logger.Info("cache-cleared")
}

// Close closes the cache and releases resources.
// Close is safe to call more than once.
func (r *RistrettoCache) Close() {
	r.closeOnce.Do(func() {
		r.cache.Close()
		r.logger.Info("cache-closed")
	})
}

// Len returns the number of entries held, from Ristretto's key metrics.
// Expired entries count until Ristretto's TTL sweep removes them.
func (r *RistrettoCache) Len() int {
	r.cache.Wait()

	m := r.cache.Metrics
	if m == nil {
		return 0
	}

	n := int64(m.KeysAdded()) - int64(m.KeysEvicted())
	if n < 0 {
		return 0
	}
	return int(n)
}
