package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/adapters/notify"
	"github.com/shadowine/contact-intake/internal/config"
	"github.com/shadowine/contact-intake/internal/core"
)

// NotifierFactory creates notification transports based on configuration
type NotifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNotifierFactory creates a new notifier factory
func NewNotifierFactory(cfg *config.Config, logger *zap.Logger) *NotifierFactory {
	return &NotifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateNotifier creates a notifier based on the configuration
func (f *NotifierFactory) CreateNotifier() (core.Notifier, error) {
	emailCfg := f.cfg.GetEmail()

	sendTimeout, err := f.cfg.GetDuration("email.send_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid email send timeout: %w", err)
	}

	recipient := emailCfg.RecipientAddress
	if recipient == "" {
		recipient = emailCfg.FromAddress
	}

	switch emailCfg.Transport {
	case "ses":
		sesCfg := f.cfg.GetSES()
		return notify.NewSESNotifier(
			context.Background(),
			sesCfg.Region,
			sesCfg.AccessKeyID,
			sesCfg.SecretAccessKey,
			emailCfg.FromAddress,
			recipient,
			sendTimeout,
			f.logger,
		)
	case "smtp":
		smtpCfg := f.cfg.GetSMTP()
		return notify.NewSMTPNotifier(
			smtpCfg.Address,
			smtpCfg.Username,
			smtpCfg.Password,
			emailCfg.FromAddress,
			recipient,
			sendTimeout,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported email transport: %s", emailCfg.Transport)
	}
}
