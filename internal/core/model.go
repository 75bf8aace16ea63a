package core

import (
	"time"
)

// Submission represents one inbound form submission. It is a transient
// value object consumed once per request.
type Submission struct {
	Name              string
	Email             string
	Phone             string
	Message           string
	WorkName          string
	VerificationToken string
	Source            string
	Page              string
	ClientAddress     string
	UserAgent         string
}

// SubmissionRecord represents the persisted form of a submission
type SubmissionRecord struct {
	Name          string
	Email         string
	Phone         string
	Message       string
	WorkName      string
	Status        string
	ClientAddress string
	UserAgent     string
	Source        string
	Page          string
	CreatedAt     time.Time
}

// NotificationResult represents the outcome of a successful notification send
type NotificationResult struct {
	MessageID string
}

// Result represents a fully processed submission
type Result struct {
	MessageID string
}

// Policy controls per-endpoint processing behavior
type Policy struct {
	// Endpoint name used for logging and the default source tag
	Endpoint string
	// RequireVerification gates the human-verification stage
	RequireVerification bool
	// DefaultSource is recorded when the payload carries no source
	DefaultSource string
}

// NewRecord derives the persisted record from a submission with status "new"
func NewRecord(sub *Submission, pol Policy, now time.Time) *SubmissionRecord {
	source := sub.Source
	if source == "" {
		source = pol.DefaultSource
	}
	return &SubmissionRecord{
		Name:          sub.Name,
		Email:         sub.Email,
		Phone:         sub.Phone,
		Message:       sub.Message,
		WorkName:      sub.WorkName,
		Status:        "new",
		ClientAddress: sub.ClientAddress,
		UserAgent:     sub.UserAgent,
		Source:        source,
		Page:          sub.Page,
		CreatedAt:     now,
	}
}
