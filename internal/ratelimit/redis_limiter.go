package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyMissing  = -2 * time.Nanosecond
	keyNoExpire = -1 * time.Nanosecond
)

// RedisLimiter is a fixed window limiter over Redis, for deployments where
// rate-limit state must be shared across instances. INCR keeps the count
// increment atomic without a process-local lock.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
	limit     int
	window    time.Duration
	now       func() time.Time
}

// NewRedisLimiter creates a new Redis-backed fixed window rate limiter
func NewRedisLimiter(client *redis.Client, keyPrefix string, limit int, window time.Duration, now func() time.Time) *RedisLimiter {
	if now == nil {
		now = time.Now
	}
	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
		now:       now,
	}
}

// Admit decides whether the request for the given client key is allowed
func (l *RedisLimiter) Admit(ctx context.Context, key string) (Decision, error) {
	redisKey := l.keyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("error incrementing key %q: %w", redisKey, err)
	}

	ttl := l.window
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("error setting expiration for key %q: %w", redisKey, err)
		}
	} else {
		duration, err := l.client.TTL(ctx, redisKey).Result()
		if err != nil {
			return Decision{}, fmt.Errorf("error reading TTL for key %q: %w", redisKey, err)
		}
		if duration == keyMissing || duration == keyNoExpire {
			// The key lost its expiration (e.g. a racing eviction); restore it.
			if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
				return Decision{}, fmt.Errorf("error setting expiration for key %q: %w", redisKey, err)
			}
		} else {
			ttl = duration
		}
	}

	resetAt := l.now().Add(ttl)

	if count > int64(l.limit) {
		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: ceilSeconds(ttl),
		}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - int(count),
		ResetAt:   resetAt,
	}, nil
}

// Close closes the underlying Redis client
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
