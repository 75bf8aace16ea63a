package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// Decision is the outcome of one admission check. Limit, Remaining and
// ResetAt accompany every decision; RetryAfter is set only on rejection.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter defines the interface for per-client request admission
type Limiter interface {
	// Admit decides whether the request for the given client key is allowed
	Admit(ctx context.Context, key string) (Decision, error)
}

// FixedWindowLimiter admits up to limit requests per fixed window per client
// key, backed by a Store. Admission is serialized under a single mutex so
// the expiry check and the count increment are atomic per key.
type FixedWindowLimiter struct {
	store  Store
	limit  int
	window time.Duration
	mu     sync.Mutex
	now    func() time.Time
}

// NewFixedWindowLimiter creates a new fixed window rate limiter
func NewFixedWindowLimiter(store Store, limit int, window time.Duration, now func() time.Time) *FixedWindowLimiter {
	if now == nil {
		now = time.Now
	}
	return &FixedWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    now,
	}
}

// Admit decides whether the request for the given client key is allowed
func (l *FixedWindowLimiter) Admit(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.store.Get(key)
	if !ok || !entry.ResetAt.After(now) {
		// First request from this key, or the window expired: the entry is
		// replaced, not mutated.
		resetAt := now.Add(l.window)
		l.store.Set(key, Entry{Key: key, Count: 1, ResetAt: resetAt})
		return Decision{
			Allowed:   true,
			Limit:     l.limit,
			Remaining: l.limit - 1,
			ResetAt:   resetAt,
		}, nil
	}

	if entry.Count >= l.limit {
		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			ResetAt:    entry.ResetAt,
			RetryAfter: ceilSeconds(entry.ResetAt.Sub(now)),
		}, nil
	}

	entry.Count++
	l.store.Set(key, entry)
	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - entry.Count,
		ResetAt:   entry.ResetAt,
	}, nil
}

// Stop stops the backing store's background sweep if it has one
func (l *FixedWindowLimiter) Stop() {
	if stopper, ok := l.store.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}

// ceilSeconds rounds a duration up to whole seconds
func ceilSeconds(d time.Duration) time.Duration {
	return time.Duration(math.Ceil(d.Seconds())) * time.Second
}
