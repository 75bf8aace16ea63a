package core

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// emailPattern is a syntactic check only: local-part@domain with no
// whitespace and a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmissionPipeline is the core service processing one inbound submission
// through validate, verify, persist and notify stages.
type SubmissionPipeline struct {
	verifier         HumanVerifier
	store            SubmissionStore
	notifier         Notifier
	logger           *zap.Logger
	secretConfigured bool
	now              func() time.Time
}

// NewSubmissionPipeline creates a new submission pipeline
func NewSubmissionPipeline(
	verifier HumanVerifier,
	store SubmissionStore,
	notifier Notifier,
	logger *zap.Logger,
	secretConfigured bool,
) *SubmissionPipeline {
	return &SubmissionPipeline{
		verifier:         verifier,
		store:            store,
		notifier:         notifier,
		logger:           logger,
		secretConfigured: secretConfigured,
		now:              time.Now,
	}
}

// Process runs the submission through the ordered pipeline stages. Stage
// outcomes differ in criticality: validation and verification failures are
// terminal before any side effect, a persistence failure is logged and the
// pipeline continues, a notification failure is terminal.
func (p *SubmissionPipeline) Process(ctx context.Context, sub *Submission, pol Policy) (*Result, error) {
	// Structural validation
	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		p.logger.Debug("Submission rejected: missing required fields",
			zap.String("endpoint", pol.Endpoint))
		return nil, &ValidationError{Reason: "Missing required fields. Please provide name, email and message."}
	}
	if !emailPattern.MatchString(sub.Email) {
		p.logger.Debug("Submission rejected: invalid email format",
			zap.String("endpoint", pol.Endpoint))
		return nil, &ValidationError{Reason: "Invalid email format."}
	}

	// Human verification
	if pol.RequireVerification {
		if sub.VerificationToken == "" {
			p.logger.Debug("Submission rejected: missing reCAPTCHA token",
				zap.String("endpoint", pol.Endpoint))
			return nil, &VerificationError{Reason: "reCAPTCHA verification is required."}
		}
		if !p.secretConfigured {
			p.logger.Error("reCAPTCHA secret key is not configured",
				zap.String("endpoint", pol.Endpoint))
			return nil, &VerificationError{
				Reason:      "Server configuration error. Please contact administrator.",
				ConfigCause: true,
			}
		}
		if !p.verifier.Verify(ctx, sub.VerificationToken) {
			p.logger.Debug("Submission rejected: reCAPTCHA verification failed",
				zap.String("endpoint", pol.Endpoint))
			return nil, &VerificationError{Reason: "reCAPTCHA verification failed. Please try again."}
		}
	}

	// Persistence is best-effort: a notification for a human matters more
	// than a durable record, so a store failure does not abort the pipeline.
	record := NewRecord(sub, pol, p.now())
	if err := p.store.Save(ctx, record); err != nil {
		p.logger.Error("Failed to save submission record",
			zap.Error(err),
			zap.String("endpoint", pol.Endpoint),
			zap.String("email", sub.Email))
	} else {
		p.logger.Info("Submission record saved",
			zap.String("endpoint", pol.Endpoint),
			zap.String("email", sub.Email))
	}

	// Notification dispatch is the side effect the caller's success response
	// promises, so a failure here is terminal.
	res, err := p.notifier.Send(ctx, sub)
	if err != nil {
		p.logger.Error("Failed to dispatch notification",
			zap.Error(err),
			zap.String("endpoint", pol.Endpoint))
		return nil, &NotificationError{Err: err}
	}

	return &Result{MessageID: res.MessageID}, nil
}
