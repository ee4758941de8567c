package application

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Deduplicator collapses concurrent loads of the same key into one call.
// Every caller attached to a key receives the same value or the same error,
// and the key is released as soon as the call settles.
type Deduplicator[V any] struct {
	group singleflight.Group

	mu      sync.Mutex
	running map[string]int
	waiting map[string]int
}

func NewDeduplicator[V any]() *Deduplicator[V] {
	return &Deduplicator[V]{
		running: make(map[string]int),
		waiting: make(map[string]int),
	}
}

// Pending reports whether a load for key is in flight.
func (d *Deduplicator[V]) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.running[key] > 0
}

// PendingKeys lists the keys with a load in flight.
func (d *Deduplicator[V]) PendingKeys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]string, 0, len(d.running))
	for key := range d.running {
		keys = append(keys, key)
	}

	return keys
}

// Do runs fn once per key among concurrent callers. fn runs detached from
// ctx so one caller giving up does not fail the others; that caller gets
// ctx.Err() instead.
func (d *Deduplicator[V]) Do(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, error) {
	detached := context.WithoutCancel(ctx)

	d.track(d.waiting, key, 1)
	ch := d.group.DoChan(key, func() (any, error) {
		d.track(d.running, key, 1)
		defer d.track(d.running, key, -1)

		return fn(detached)
	})

	var zero V
	select {
	case <-ctx.Done():
		d.track(d.waiting, key, -1)
		return zero, ctx.Err()
	case res := <-ch:
		d.track(d.waiting, key, -1)
		if res.Err != nil {
			return zero, res.Err
		}
		value, _ := res.Val.(V)
		return value, nil
	}
}

// Forget releases key so the next Do starts a new call even if one is still
// in flight. Callers already attached keep waiting on the old call.
func (d *Deduplicator[V]) Forget(key string) {
	d.group.Forget(key)
}

func (d *Deduplicator[V]) waiters(key string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.waiting[key]
}

func (d *Deduplicator[V]) track(counts map[string]int, key string, delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	counts[key] += delta
	if counts[key] <= 0 {
		delete(counts, key)
	}
}
