package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calcdesk/pkg/session"
)

func newRedisStore(t *testing.T) *session.RedisStore {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, "calcdesk:test:"+t.Name()+":")
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)

	s := session.NewSession("11111111-1111-4111-8111-111111111111", time.Minute)
	require.NoError(t, s.Encode("current", "1,234"))
	require.NoError(t, store.Create(ctx, s))
	t.Cleanup(func() { _ = store.Delete(ctx, s.Token) })

	got, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	var current string
	_, err = got.Decode("current", &current)
	require.NoError(t, err)
	assert.Equal(t, "1,234", current)

	require.NoError(t, got.Encode("current", "5"))
	require.NoError(t, store.Update(ctx, got))

	require.NoError(t, store.Delete(ctx, s.Token))
	_, err = store.Get(ctx, s.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, store.Update(ctx, got), session.ErrSessionNotFound)

	expired := session.NewSession("22222222-2222-4222-8222-222222222222", -time.Second)
	assert.ErrorIs(t, store.Create(ctx, expired), session.ErrSessionExpired)
	assert.NoError(t, store.DeleteExpired(ctx))
}

func TestNewRedisStorePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { session.NewRedisStore(nil, "") })
}
