package storage

import (
	"context"
	"sync"

	"github.com/shadowine/contact-intake/internal/core"
)

// MemoryStore is an in-memory implementation of the SubmissionStore
// interface, used for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []*core.SubmissionRecord
}

// NewMemoryStore creates a new in-memory submission store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save creates a new submission record
func (s *MemoryStore) Save(_ context.Context, record *core.SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	return nil
}

// Records returns a snapshot of the saved records
func (s *MemoryStore) Records() []*core.SubmissionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*core.SubmissionRecord, len(s.records))
	copy(out, s.records)
	return out
}
