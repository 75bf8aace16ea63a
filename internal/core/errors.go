package core

import (
	"time"
)

// ValidationError indicates a caller-caused structural problem with the
// submission. Always a 400-class outcome.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// VerificationError indicates a human-verification failure. ConfigCause
// distinguishes a missing server-side secret (500-class) from a bad or
// missing token (400-class).
type VerificationError struct {
	Reason      string
	ConfigCause bool
}

func (e *VerificationError) Error() string {
	return e.Reason
}

// ThrottledError indicates the client was rejected by the rate limiter
// before the pipeline ran.
type ThrottledError struct {
	RetryAfter time.Duration
	ResetAt    time.Time
}

func (e *ThrottledError) Error() string {
	return "Too many requests. Please try again later."
}

// NotificationError indicates the outbound notification could not be
// dispatched. The wrapped cause is logged, never shown to the caller.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return "Failed to send email. Please try again later."
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
