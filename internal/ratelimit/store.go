package ratelimit

import (
	"time"
)

// Entry tracks one client's request count in the current window.
// Count is always >= 1; an entry is never read past ResetAt.
type Entry struct {
	Key     string
	Count   int
	ResetAt time.Time
}

// Store defines the interface for rate-limit window state
type Store interface {
	// Get retrieves the entry for a client key
	Get(key string) (Entry, bool)

	// Set stores the entry for a client key
	Set(key string, entry Entry)

	// Delete removes the entry for a client key
	Delete(key string)

	// SweepExpired removes every entry whose window expired before now
	SweepExpired(now time.Time)
}
