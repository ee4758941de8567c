package application

import "sync"

// ResponseCache holds the last successful response per key. Entries live
// until a mutation invalidates them; there is no expiry.
type ResponseCache[V any] struct {
	mu      sync.Mutex
	entries map[string]V
	// generations advance on every invalidation so a fetch that started
	// before it cannot repopulate the entry afterwards. epoch does the same
	// for every key at once on Reset.
	generations map[string]uint64
	epoch       uint64
}

// stamp identifies the cache state a fetch started from.
type stamp struct {
	epoch uint64
	gen   uint64
}

func NewResponseCache[V any]() *ResponseCache[V] {
	return &ResponseCache[V]{
		entries:     make(map[string]V),
		generations: make(map[string]uint64),
	}
}

func (c *ResponseCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]
	return value, ok
}

func (c *ResponseCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

func (c *ResponseCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.generations[key]++
}

// InvalidateFunc drops every entry for which match returns true.
func (c *ResponseCache[V]) InvalidateFunc(match func(key string, value V) bool) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dropped []string
	for key, value := range c.entries {
		if match(key, value) {
			delete(c.entries, key)
			c.generations[key]++
			dropped = append(dropped, key)
		}
	}

	return dropped
}

// Reset drops every entry and voids all fetches started before it.
func (c *ResponseCache[V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	clear(c.generations)
	c.epoch++
}

func (c *ResponseCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *ResponseCache[V]) stamp(key string) stamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	return stamp{epoch: c.epoch, gen: c.generations[key]}
}

// setIfCurrent stores value only when key has not been invalidated or reset
// since at was taken.
func (c *ResponseCache[V]) setIfCurrent(key string, at stamp, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != at.epoch || c.generations[key] != at.gen {
		return false
	}
	c.entries[key] = value

	return true
}
