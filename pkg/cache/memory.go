package cache

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// entry holds a cached value with its key and cost.
type entry[V any] struct {
	value V
	key   string
	cost  int64
}

// Memory is an in-memory LRU cache bounded by entry count and by total cost.
//
// The most recently accessed items are at the front of the list;
// the least recently used are at the back.
type Memory[V any] struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
	cost     int64
	opts     *memoryOptions
	group    singleflight.Group
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[*storage.Object](
//	    cache.WithMaxEntries(256),
//	    cache.WithMaxCost(64 << 20),
//	)
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
	}
}

// Get retrieves a value by key and marks it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return elem.Value.(*entry[V]).value, nil
}

// Set stores a value, evicting least recently used entries as needed.
func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	cost := costOf(value)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opts.maxCost > 0 && cost > m.opts.maxCost {
		return ErrTooLarge
	}

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}

	for m.overCapacity(cost) {
		m.removeElement(m.eviction.Back())
	}

	e := &entry[V]{key: key, value: value, cost: cost}
	m.items[key] = m.eviction.PushFront(e)
	m.cost += cost

	return nil
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
	return nil
}

// Len returns the number of entries.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Cost returns the summed cost of all entries.
func (m *Memory[V]) Cost() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cost
}

// GetOrSet returns the cached value for key, or calls fn to compute it on a miss.
// Concurrent misses for the same key share a single fn call.
// Errors from fn are returned and not cached; values too large to cache are
// returned without being stored.
func (m *Memory[V]) GetOrSet(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, err := m.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_ = m.Set(ctx, key, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// overCapacity reports whether adding cost would exceed a limit.
// Caller must hold the mutex.
func (m *Memory[V]) overCapacity(cost int64) bool {
	if m.eviction.Len() == 0 {
		return false
	}
	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		return true
	}
	return m.opts.maxCost > 0 && m.cost+cost > m.opts.maxCost
}

// removeElement removes a specific element.
// Caller must hold the mutex.
func (m *Memory[V]) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(m.items, e.key)
	m.cost -= e.cost
}

var _ Cache[any] = (*Memory[any])(nil)
