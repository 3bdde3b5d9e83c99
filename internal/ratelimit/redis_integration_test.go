//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropofhope/internal/ratelimit"
	"dropofhope/pkg/testutil/containers"
)

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	store := ratelimit.NewRedisStore(rc.Client)
	ctx := context.Background()

	t.Run("counts within one window", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		for want := int64(1); want <= 3; want++ {
			count, remaining, err := store.Incr(ctx, "rl:test:a", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, count)
			assert.Greater(t, remaining, time.Duration(0))
			assert.LessOrEqual(t, remaining, time.Minute)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		_, _, err := store.Incr(ctx, "rl:test:a", time.Minute)
		require.NoError(t, err)

		count, _, err := store.Incr(ctx, "rl:test:b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		_, _, err := store.Incr(ctx, "rl:test:short", time.Second)
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		count, _, err := store.Incr(ctx, "rl:test:short", time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
