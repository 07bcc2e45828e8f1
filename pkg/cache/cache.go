package cache

import (
	"fmt"
	"time"
)

// Cache is the interface for caching API responses and access tokens.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (value, true) if found and not expired, (nil, false) otherwise.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with a TTL.
	Set(key string, value interface{}, ttl time.Duration) bool

	// GetOrLoad returns the cached value for key. On a miss it calls load,
	// stores the result with the cache's default TTL and returns it.
	// A load error is returned as-is and nothing is stored.
	GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all values from the cache.
	Clear()

	// Len returns the number of entries currently held.
	Len() int

	// Close closes the cache and releases resources.
	Close()
}

// GetOrCompute is the typed form of Cache.GetOrLoad.
func GetOrCompute[T any](c Cache, key string, compute func() (T, error)) (T, error) {
	var zero T

	value, err := c.GetOrLoad(key, func() (interface{}, error) {
		return compute()
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %q has type %T, want %T", key, value, zero)
	}

	return typed, nil
}
