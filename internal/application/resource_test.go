package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLoadCachesSuccess(t *testing.T) {
	res := newResource[string]()
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		value, err := res.load(context.Background(), "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestResourceLoadDoesNotCacheErrors(t *testing.T) {
	res := newResource[string]()
	boom := errors.New("boom")
	var calls atomic.Int32

	_, err := res.load(context.Background(), "k", func(context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, res.cache.Len())

	value, err := res.load(context.Background(), "k", func(context.Context) (string, error) {
		calls.Add(1)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, int32(2), calls.Load())
}

func TestResourceInvalidateRefetches(t *testing.T) {
	res := newResource[int]()
	var calls atomic.Int32
	fetch := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	first, err := res.load(context.Background(), "k", fetch)
	require.NoError(t, err)
	res.invalidate("k")
	second, err := res.load(context.Background(), "k", fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestResourceInvalidateDuringFetchKeepsStaleValueOutOfCache(t *testing.T) {
	res := newResource[string]()
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		value, _ := res.load(context.Background(), "k", func(context.Context) (string, error) {
			<-release
			return "stale", nil
		})
		done <- value
	}()
	require.Eventually(t, func() bool { return res.dedup.Pending("k") }, waitFor, time.Millisecond)

	res.invalidate("k")
	close(release)
	assert.Equal(t, "stale", <-done)

	_, ok := res.cache.Get("k")
	assert.False(t, ok)

	value, err := res.load(context.Background(), "k", func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
}

func TestResourceResetDuringFirstFetchKeepsValueOutOfCache(t *testing.T) {
	res := newResource[string]()
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		value, _ := res.load(context.Background(), "k", func(context.Context) (string, error) {
			<-release
			return "old-identity", nil
		})
		done <- value
	}()
	require.Eventually(t, func() bool { return res.dedup.Pending("k") }, waitFor, time.Millisecond)

	res.reset()
	close(release)
	assert.Equal(t, "old-identity", <-done)

	_, cached := res.cache.Get("k")
	assert.False(t, cached)
	value, err := res.load(context.Background(), "k", func(context.Context) (string, error) {
		return "new-identity", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new-identity", value)
}

func TestResourceInvalidateFuncCoversKeysStillLoading(t *testing.T) {
	res := newResource[[]string]()
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = res.load(context.Background(), "thread-1", func(context.Context) ([]string, error) {
			<-release
			return []string{"run-1"}, nil
		})
	}()
	require.Eventually(t, func() bool { return res.dedup.Pending("thread-1") }, waitFor, time.Millisecond)

	res.invalidateFunc(func(string, []string) bool { return false })
	close(release)
	<-done

	_, cached := res.cache.Get("thread-1")
	assert.False(t, cached)
}
