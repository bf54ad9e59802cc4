package storage

import (
	"context"

	"github.com/dmitrymomot/mailmerge/pkg/cache"
)

// Cached memoizes a Source for the lifetime of one run, so a file shared by
// many rows is read once. Errors are not cached.
type Cached struct {
	src   Source
	cache *cache.Memory[*Object]
}

// NewCached wraps src with an in-memory LRU.
func NewCached(src Source, opts ...cache.MemoryOption) *Cached {
	return &Cached{src: src, cache: cache.NewMemory[*Object](opts...)}
}

// Get implements Source.
func (c *Cached) Get(ctx context.Context, location string) (*Object, error) {
	return c.cache.GetOrSet(ctx, location, func(ctx context.Context) (*Object, error) {
		return c.src.Get(ctx, location)
	})
}

var _ Source = (*Cached)(nil)
