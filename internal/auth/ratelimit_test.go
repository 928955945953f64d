// internal/auth/ratelimit_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	srv := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: srv.Addr()})
}

func TestRedisRateLimiter_AllowsWithinLimit(t *testing.T) {
	limiter := NewRedisRateLimiter(newTestRedis(t), 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
}

func TestRedisRateLimiter_BlocksOverLimit(t *testing.T) {
	limiter := NewRedisRateLimiter(newTestRedis(t), 2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRedisRateLimiter(newTestRedis(t), 1, time.Minute)

	ok, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = limiter.Allow(context.Background(), "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)
}
