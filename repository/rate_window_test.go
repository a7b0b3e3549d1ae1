package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalRateLimiterFixedWindow(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	store := NewLocalRateLimiter(0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := store.Allow(ctx, "client", 5, time.Minute)
		require.NoError(err)
		require.True(result.Allow)
		require.EqualValues(4-i, result.Remaining)
	}

	result, err := store.Allow(ctx, "client", 5, time.Minute)
	require.NoError(err)
	require.False(result.Allow)
	require.EqualValues(0, result.Remaining)
	require.Greater(result.RetryAfter, time.Duration(0))

	// another client is counted independently
	result, err = store.Allow(ctx, "other", 5, time.Minute)
	require.NoError(err)
	require.True(result.Allow)
}

func TestLocalRateLimiterWindowReset(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	store := NewLocalRateLimiter(0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := store.Allow(ctx, "client", 2, 300*time.Millisecond)
		require.NoError(err)
		require.EqualValues(i < 2, result.Allow)
	}

	time.Sleep(400 * time.Millisecond)

	result, err := store.Allow(ctx, "client", 2, 300*time.Millisecond)
	require.NoError(err)
	require.True(result.Allow)
	require.EqualValues(1, result.Remaining)
}

func TestLocalRateLimiterSweep(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	store := NewLocalRateLimiter(100 * time.Millisecond)
	ctx := context.Background()

	_, err := store.Allow(ctx, "stale", 5, 50*time.Millisecond)
	require.NoError(err)

	time.Sleep(200 * time.Millisecond)

	_, err = store.Allow(ctx, "fresh", 5, time.Minute)
	require.NoError(err)

	store.lock.Lock()
	defer store.lock.Unlock()
	require.Len(store.windows, 1)
	require.Contains(store.windows, "fresh")
}
