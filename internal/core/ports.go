package core

import (
	"context"
)

// HumanVerifier defines the interface for third-party human verification.
// Verify reports whether the token passed verification; any failure to
// verify (empty token, network error, non-success response) is false.
type HumanVerifier interface {
	Verify(ctx context.Context, token string) bool
}

// SubmissionStore defines the interface for persisting submission records
type SubmissionStore interface {
	// Save creates a new submission record
	Save(ctx context.Context, record *SubmissionRecord) error
}

// Notifier defines the interface for dispatching the outbound notification
type Notifier interface {
	// Send dispatches a notification for the submission and returns the
	// transport's message id
	Send(ctx context.Context, sub *Submission) (*NotificationResult, error)
}
