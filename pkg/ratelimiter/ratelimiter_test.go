package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calcdesk/pkg/ratelimiter"
)

func newBucket(t *testing.T, cfg ratelimiter.Config) *ratelimiter.Bucket {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()

	cfg := ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Hour}

	t.Run("burst then deny", func(t *testing.T) {
		t.Parallel()
		b := newBucket(t, cfg)
		ctx := context.Background()

		for i := range 3 {
			res, err := b.Allow(ctx, "s1")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, 2-i, res.Remaining)
			assert.Equal(t, 3, res.Limit)
			assert.Zero(t, res.RetryAfter())
		}

		res, err := b.Allow(ctx, "s1")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Positive(t, res.RetryAfter())

		// Denials consume nothing and other keys are independent.
		res, err = b.AllowN(ctx, "s2", 3)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("refills over time", func(t *testing.T) {
		t.Parallel()
		b := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 20 * time.Millisecond})
		ctx := context.Background()

		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, res.Allowed())

		res, err = b.Allow(ctx, "k")
		require.NoError(t, err)
		require.False(t, res.Allowed())

		require.Eventually(t, func() bool {
			res, err := b.Allow(ctx, "k")
			return err == nil && res.Allowed()
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("reset", func(t *testing.T) {
		t.Parallel()
		b := newBucket(t, cfg)
		ctx := context.Background()

		_, err := b.AllowN(ctx, "k", 3)
		require.NoError(t, err)
		require.NoError(t, b.Reset(ctx, "k"))

		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("bad input", func(t *testing.T) {
		t.Parallel()
		b := newBucket(t, cfg)

		_, err := b.AllowN(context.Background(), "k", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
		_, err = b.Allow(context.Background(), "")
		assert.ErrorIs(t, err, ratelimiter.ErrEmptyKey)
	})
}

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("down")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestBucket_StoreFailure(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	_, err = b.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreFailure)
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]ratelimiter.Config{
		"zero capacity": {Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		"zero rate":     {Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		"zero interval": {Capacity: 1, RefillRate: 1},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	assert.False(t, ratelimiter.Config{}.Enabled())
	assert.True(t, ratelimiter.Config{Capacity: 1}.Enabled())
}

func TestSetHeaders(t *testing.T) {
	t.Parallel()

	reset := time.Now().Add(1500 * time.Millisecond)

	h := http.Header{}
	ratelimiter.SetHeaders(h, &ratelimiter.Result{Limit: 5, Remaining: 2, ResetAt: reset})
	assert.Equal(t, "5", h.Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", h.Get("X-RateLimit-Remaining"))
	assert.Equal(t, strconv.FormatInt(reset.Unix(), 10), h.Get("X-RateLimit-Reset"))
	assert.Empty(t, h.Get("Retry-After"))

	h = http.Header{}
	ratelimiter.SetHeaders(h, &ratelimiter.Result{Limit: 5, Remaining: -1, ResetAt: reset})
	assert.Equal(t, "0", h.Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", h.Get("Retry-After"))
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(10*time.Millisecond),
		ratelimiter.WithStaleAfter(20*time.Millisecond),
	)
	defer store.Close()

	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	_, _, err := store.ConsumeTokens(context.Background(), "k", 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	store.Close()
}
