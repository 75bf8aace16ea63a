package ratelimit

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the Store interface with a
// background sweep that bounds memory growth from clients seen once.
type MemoryStore struct {
	entries   map[string]Entry
	mu        sync.RWMutex
	logger    *zap.Logger
	sweepFreq time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewMemoryStore creates a new in-memory rate-limit store
func NewMemoryStore(logger *zap.Logger, sweepFreq time.Duration) *MemoryStore {
	store := &MemoryStore{
		entries:   make(map[string]Entry),
		logger:    logger,
		sweepFreq: sweepFreq,
		stopCh:    make(chan struct{}),
	}

	// Start background sweep
	go store.startSweepTask()

	return store
}

// Get retrieves the entry for a client key
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Set stores the entry for a client key
func (s *MemoryStore) Set(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
}

// Delete removes the entry for a client key
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// SweepExpired removes every entry whose window expired before now. Candidates
// are collected under a read lock and evicted one key at a time so the sweep
// never blocks admissions for its whole duration; a key touched concurrently
// is simply recreated by the next request.
func (s *MemoryStore) SweepExpired(now time.Time) {
	s.mu.RLock()
	expired := make([]string, 0)
	for key, entry := range s.entries {
		if entry.ResetAt.Before(now) {
			expired = append(expired, key)
		}
	}
	s.mu.RUnlock()

	expiredCount := 0
	for _, key := range expired {
		s.mu.Lock()
		if entry, ok := s.entries[key]; ok && entry.ResetAt.Before(now) {
			delete(s.entries, key)
			expiredCount++
		}
		s.mu.Unlock()
	}

	if expiredCount > 0 {
		s.logger.Debug("Swept expired rate-limit entries", zap.Int("expired_count", expiredCount))
	}
}

// Len returns the number of tracked client keys
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// startSweepTask runs the periodic sweep independently of request handling
func (s *MemoryStore) startSweepTask() {
	ticker := time.NewTicker(s.sweepFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepExpired(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background sweep task
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}
