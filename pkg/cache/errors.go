package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a key does not exist in the cache.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrTooLarge is returned when a single value exceeds the configured cost limit.
	ErrTooLarge = errors.New("cache: value exceeds cost limit")
)
