package notify

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
)

// SMTPNotifier dispatches notifications through a plain SMTP relay. SMTP has
// no server-issued message id on submission, so one is generated locally
// after a successful DATA exchange.
type SMTPNotifier struct {
	addr        string
	username    string
	password    string
	fromAddress string
	recipient   string
	sendTimeout time.Duration
	logger      *zap.Logger
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(
	addr string,
	username string,
	password string,
	fromAddress string,
	recipient string,
	sendTimeout time.Duration,
	logger *zap.Logger,
) *SMTPNotifier {
	return &SMTPNotifier{
		addr:        addr,
		username:    username,
		password:    password,
		fromAddress: fromAddress,
		recipient:   recipient,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// Send dispatches a notification for the submission
func (n *SMTPNotifier) Send(ctx context.Context, sub *core.Submission) (*core.NotificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("notification dispatch canceled: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	deadline := n.sendDeadline(ctx)

	conn, err := net.DialTimeout("tcp", n.addr, time.Until(deadline))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP relay: %w", err)
	}

	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return nil, fmt.Errorf("EHLO failed: %w", err)
	}

	if n.username != "" {
		if err := c.Auth(sasl.NewPlainClient("", n.username, n.password)); err != nil {
			return nil, fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := c.Mail(n.fromAddress, nil); err != nil {
		return nil, fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := c.Rcpt(n.recipient, nil); err != nil {
		return nil, fmt.Errorf("RCPT TO failed: %w", err)
	}

	messageID := uuid.NewString()

	wc, err := c.Data()
	if err != nil {
		return nil, fmt.Errorf("DATA command failed: %w", err)
	}

	if _, err := wc.Write(n.buildMessage(sub, messageID, hostname)); err != nil {
		wc.Close()
		return nil, fmt.Errorf("failed to write message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		n.logger.Warn("QUIT command failed", zap.Error(err))
		// The message has already been accepted at this point.
	}

	n.logger.Debug("Notification dispatched via SMTP", zap.String("message_id", messageID))

	return &core.NotificationResult{MessageID: messageID}, nil
}

// sendDeadline bounds the whole exchange by the configured send timeout,
// tightened further when the caller's context expires sooner.
func (n *SMTPNotifier) sendDeadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(n.sendTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return deadline
}

// buildMessage assembles the RFC 5322 message bytes
func (n *SMTPNotifier) buildMessage(sub *core.Submission, messageID string, hostname string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.fromAddress)
	fmt.Fprintf(&b, "To: %s\r\n", n.recipient)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", sub.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", subjectFor(sub))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", messageID, hostname)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(textBody(sub), "\n", "\r\n"))
	return []byte(b.String())
}
