package application

import "context"

// resource pairs a cache with a deduplicator for one family of keys.
type resource[V any] struct {
	cache *ResponseCache[V]
	dedup *Deduplicator[V]
}

func newResource[V any]() *resource[V] {
	return &resource[V]{
		cache: NewResponseCache[V](),
		dedup: NewDeduplicator[V](),
	}
}

// load attaches to a pending fetch for key, returns the cached value, or
// starts the single fetch for key and caches its result.
func (r *resource[V]) load(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	if !r.dedup.Pending(key) {
		if value, ok := r.cache.Get(key); ok {
			return value, nil
		}
	}

	return r.dedup.Do(ctx, key, func(ctx context.Context) (V, error) {
		if value, ok := r.cache.Get(key); ok {
			return value, nil
		}

		at := r.cache.stamp(key)
		value, err := fetch(ctx)
		if err != nil {
			return value, err
		}
		r.cache.setIfCurrent(key, at, value)

		return value, nil
	})
}

func (r *resource[V]) invalidate(key string) {
	r.cache.Invalidate(key)
	r.dedup.Forget(key)
}

// invalidateFunc drops the cached entries match selects. Keys still being
// fetched have no value to match against yet, so they are invalidated too.
func (r *resource[V]) invalidateFunc(match func(key string, value V) bool) {
	for _, key := range r.cache.InvalidateFunc(match) {
		r.dedup.Forget(key)
	}
	for _, key := range r.dedup.PendingKeys() {
		r.invalidate(key)
	}
}

// reset forgets everything, including fetches still in flight.
func (r *resource[V]) reset() {
	r.cache.Reset()
	for _, key := range r.dedup.PendingKeys() {
		r.dedup.Forget(key)
	}
}
