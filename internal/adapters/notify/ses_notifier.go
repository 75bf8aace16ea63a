package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
)

// SESNotifier dispatches notifications through AWS SES
type SESNotifier struct {
	client      *ses.Client
	fromAddress string
	recipient   string
	sendTimeout time.Duration
	logger      *zap.Logger
}

// NewSESNotifier creates a new SES notifier. Static credentials take
// precedence when configured; otherwise the default AWS credential chain
// applies.
func NewSESNotifier(
	ctx context.Context,
	region string,
	accessKeyID string,
	secretAccessKey string,
	fromAddress string,
	recipient string,
	sendTimeout time.Duration,
	logger *zap.Logger,
) (*SESNotifier, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &SESNotifier{
		client:      ses.NewFromConfig(awsCfg),
		fromAddress: fromAddress,
		recipient:   recipient,
		sendTimeout: sendTimeout,
		logger:      logger,
	}, nil
}

// Send dispatches a notification for the submission. Reply-To is the
// submitter so the recipient can answer directly.
func (n *SESNotifier) Send(ctx context.Context, sub *core.Submission) (*core.NotificationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, n.sendTimeout)
	defer cancel()

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{n.recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subjectFor(sub)),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(textBody(sub)),
					Charset: aws.String("UTF-8"),
				},
			},
		},
		ReplyToAddresses: []string{sub.Email},
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to send email via SES: %w", err)
	}

	messageID := aws.ToString(out.MessageId)
	n.logger.Debug("Notification dispatched via SES", zap.String("message_id", messageID))

	return &core.NotificationResult{MessageID: messageID}, nil
}
