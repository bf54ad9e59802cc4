package cache

import (
	"context"
)

// Cache is a generic key-value cache.
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value. Values larger than the cache's cost limit are rejected with ErrTooLarge.
	Set(ctx context.Context, key string, value V) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Len returns the number of live entries.
	Len() int
}

// Sizer is implemented by values that report their memory cost.
// Values that do not implement it cost 1.
type Sizer interface {
	Size() int
}

func costOf[V any](v V) int64 {
	if s, ok := any(v).(Sizer); ok {
		return int64(s.Size())
	}
	return 1
}
