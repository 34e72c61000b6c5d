package redisstore_test

import (
	"context"
	"testing"
	"time"

	redisstore "stockquotes-ingestor/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newLock(t *testing.T) (*redisstore.BatchLock, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.New(client, time.Minute), mr
}

func TestTryAcquire(t *testing.T) {
	lock, _ := newLock(t)
	ctx := context.Background()

	tok, ok, err := lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, tok)

	_, ok, err = lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRelease_AllowsReacquire(t *testing.T) {
	lock, _ := newLock(t)
	ctx := context.Background()

	tok, ok, err := lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, lock.Release(ctx, "k1", tok))

	_, ok, err = lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRelease_WrongTokenKeepsLock(t *testing.T) {
	lock, mr := newLock(t)
	ctx := context.Background()

	tok, _, err := lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.NoError(t, lock.Release(ctx, "k1", "someone-else"))

	got, err := mr.Get("k1")
	require.NoError(t, err)
	require.Equal(t, tok, got)
}

func TestTryAcquire_ExpiresAfterTTL(t *testing.T) {
	lock, mr := newLock(t)
	ctx := context.Background()

	_, ok, err := lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, ok, err = lock.TryAcquire(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
}
