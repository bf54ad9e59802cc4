package cache

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	maxEntries int
	maxCost    int64
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{}
}

// WithMaxEntries sets the maximum number of entries in the cache.
// When the limit is reached, the least recently used entry is evicted.
// Default: 0 (unlimited).
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithMaxCost bounds the summed cost of all entries (see Sizer).
// Least recently used entries are evicted until a new value fits.
// Default: 0 (unlimited).
func WithMaxCost(n int64) MemoryOption {
	return func(o *memoryOptions) {
		o.maxCost = n
	}
}
