package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLimiter(client, "intake:ratelimit:", limit, window, nil), server
}

func TestRedisLimiter_AdmitUnderLimit(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 2, time.Hour)

	for i := 0; i < 2; i++ {
		dec, err := limiter.Admit(context.Background(), "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, dec.Allowed)
		assert.Equal(t, 2, dec.Limit)
		assert.Equal(t, 1-i, dec.Remaining)
	}
}

func TestRedisLimiter_RejectOverLimit(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 2, time.Hour)

	for i := 0; i < 2; i++ {
		_, err := limiter.Admit(context.Background(), "203.0.113.7")
		require.NoError(t, err)
	}

	dec, err := limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)

	assert.False(t, dec.Allowed)
	assert.Equal(t, 0, dec.Remaining)
	assert.True(t, dec.RetryAfter > 0)
}

func TestRedisLimiter_WindowExpiryResetsCount(t *testing.T) {
	limiter, server := newRedisLimiter(t, 2, time.Hour)

	for i := 0; i < 3; i++ {
		_, err := limiter.Admit(context.Background(), "203.0.113.7")
		require.NoError(t, err)
	}

	server.FastForward(time.Hour + time.Second)

	dec, err := limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 1, dec.Remaining)
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 1, time.Hour)

	dec, err := limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	dec, err = limiter.Admit(context.Background(), "198.51.100.23")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}
