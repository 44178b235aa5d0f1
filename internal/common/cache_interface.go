package common

import "time"

// CacheInterface is the contract the weather severity cache runs on.
type CacheInterface interface {
	// Set stores a value under the key for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key, reporting whether it was found.
	Get(key string) (interface{}, bool)

	// GetOrSet returns the cached value, or runs loader and caches its
	// result. Loader failures are returned and never cached.
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections (Redis).
	Close() error
}
