// Package cache provides a generic in-memory LRU cache bounded by entry count
// and by total cost.
//
// Values implementing [Sizer] are charged their reported size, so a byte budget
// can be set with [WithMaxCost]; other values cost 1.
//
//	c := cache.NewMemory[*storage.Object](
//	    cache.WithMaxEntries(256),
//	    cache.WithMaxCost(64 << 20),
//	)
//
//	obj, err := c.GetOrSet(ctx, location, func(ctx context.Context) (*storage.Object, error) {
//	    return src.Get(ctx, location)
//	})
//
// [Memory.GetOrSet] deduplicates concurrent misses for the same key with
// singleflight, and never caches errors.
//
// # Error Handling
//
//   - [ErrNotFound]: key does not exist
//   - [ErrTooLarge]: a single value exceeds the cost limit
package cache
