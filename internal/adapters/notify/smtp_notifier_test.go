package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
)

func newTestSMTPNotifier(sendTimeout time.Duration) *SMTPNotifier {
	return NewSMTPNotifier("localhost:2525", "", "", "noreply@example.com", "team@example.com", sendTimeout, zap.NewNop())
}

func TestSMTPNotifier_SendDeadlineUsesConfiguredTimeout(t *testing.T) {
	notifier := newTestSMTPNotifier(10 * time.Second)

	before := time.Now()
	deadline := notifier.sendDeadline(context.Background())

	assert.WithinDuration(t, before.Add(10*time.Second), deadline, time.Second)
}

func TestSMTPNotifier_SendDeadlineTightensToContext(t *testing.T) {
	notifier := newTestSMTPNotifier(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	deadline := notifier.sendDeadline(ctx)
	ctxDeadline, ok := ctx.Deadline()
	require.True(t, ok)

	assert.Equal(t, ctxDeadline, deadline)
}

func TestSMTPNotifier_SendDeadlineIgnoresLaterContext(t *testing.T) {
	notifier := newTestSMTPNotifier(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	before := time.Now()
	deadline := notifier.sendDeadline(ctx)

	assert.WithinDuration(t, before.Add(time.Second), deadline, time.Second)
}

func TestSMTPNotifier_CanceledContextFailsWithoutDialing(t *testing.T) {
	// The address is unroutable; a dial attempt would fail differently.
	notifier := NewSMTPNotifier("203.0.113.7:2525", "", "", "noreply@example.com", "team@example.com", 10*time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := notifier.Send(ctx, &core.Submission{Name: "Ann", Email: "ann@example.com", Message: "Hi"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
