package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(zap.NewNop(), time.Hour)
	t.Cleanup(store.Stop)
	return store
}

func TestFixedWindowLimiter_Admit(t *testing.T) {
	base := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

	tt := []struct {
		desc      string
		limit     int
		runs      int
		allowed   bool
		remaining int
	}{
		{
			desc:      "first request is allowed",
			limit:     2,
			runs:      1,
			allowed:   true,
			remaining: 1,
		},
		{
			desc:      "request at the limit is allowed",
			limit:     2,
			runs:      2,
			allowed:   true,
			remaining: 0,
		},
		{
			desc:      "request over the limit is rejected",
			limit:     2,
			runs:      3,
			allowed:   false,
			remaining: 0,
		},
	}

	for _, ts := range tt {
		t.Run(ts.desc, func(t *testing.T) {
			limiter := NewFixedWindowLimiter(newTestStore(t), ts.limit, time.Hour, func() time.Time { return base })

			var dec Decision
			var err error
			for i := 0; i < ts.runs; i++ {
				dec, err = limiter.Admit(context.Background(), "203.0.113.7")
				require.NoError(t, err)
			}

			assert.Equal(t, ts.allowed, dec.Allowed)
			assert.Equal(t, ts.limit, dec.Limit)
			assert.Equal(t, ts.remaining, dec.Remaining)
			assert.Equal(t, base.Add(time.Hour), dec.ResetAt)
		})
	}
}

func TestFixedWindowLimiter_RejectionCarriesRetryAfter(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(newTestStore(t), 2, time.Hour, func() time.Time { return now })

	for i := 0; i < 2; i++ {
		_, err := limiter.Admit(context.Background(), "203.0.113.7")
		require.NoError(t, err)
	}

	// 20 minutes into the window, 40 minutes remain.
	now = now.Add(20 * time.Minute)
	dec, err := limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)

	assert.False(t, dec.Allowed)
	assert.Equal(t, 40*time.Minute, dec.RetryAfter)
	assert.True(t, dec.RetryAfter > 0)
}

func TestFixedWindowLimiter_WindowExpiryResetsCount(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(newTestStore(t), 2, time.Hour, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		dec, err := limiter.Admit(context.Background(), "203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, i < 2, dec.Allowed)
	}

	// After the window passes, the count starts over at 1.
	now = now.Add(time.Hour + time.Second)
	dec, err := limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)

	assert.True(t, dec.Allowed)
	assert.Equal(t, 1, dec.Remaining)
	assert.Equal(t, now.Add(time.Hour), dec.ResetAt)
}

func TestFixedWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewFixedWindowLimiter(newTestStore(t), 1, time.Hour, nil)

	dec, err := limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	dec, err = limiter.Admit(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, dec.Allowed)

	dec, err = limiter.Admit(context.Background(), "198.51.100.23")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestFixedWindowLimiter_ConcurrentAdmitsNeverDoubleCount(t *testing.T) {
	const workers = 50
	const limit = 2

	store := newTestStore(t)
	limiter := NewFixedWindowLimiter(store, limit, time.Hour, nil)

	var wg sync.WaitGroup
	allowed := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dec, err := limiter.Admit(context.Background(), "203.0.113.7")
			assert.NoError(t, err)
			allowed <- dec.Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	admitted := 0
	for ok := range allowed {
		if ok {
			admitted++
		}
	}

	// Exactly limit admissions, no lost updates.
	assert.Equal(t, limit, admitted)
	entry, ok := store.Get("203.0.113.7")
	require.True(t, ok)
	assert.Equal(t, limit, entry.Count)
}

func TestMemoryStore_SweepExpired(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	store.Set("expired", Entry{Key: "expired", Count: 2, ResetAt: now.Add(-time.Minute)})
	store.Set("live", Entry{Key: "live", Count: 1, ResetAt: now.Add(time.Minute)})
	require.Equal(t, 2, store.Len())

	store.SweepExpired(now)

	_, ok := store.Get("expired")
	assert.False(t, ok)
	_, ok = store.Get("live")
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_FreshWriteAfterSweepRecreatesEntry(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	store.Set("203.0.113.7", Entry{Key: "203.0.113.7", Count: 2, ResetAt: now.Add(-time.Minute)})
	store.SweepExpired(now)

	store.Set("203.0.113.7", Entry{Key: "203.0.113.7", Count: 1, ResetAt: now.Add(time.Hour)})
	entry, ok := store.Get("203.0.113.7")
	require.True(t, ok)
	assert.Equal(t, 1, entry.Count)
}
