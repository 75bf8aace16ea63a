package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/adapters/recaptcha"
	"github.com/shadowine/contact-intake/internal/config"
	"github.com/shadowine/contact-intake/internal/core"
	"github.com/shadowine/contact-intake/internal/factory"
	"github.com/shadowine/contact-intake/internal/logging"
	"github.com/shadowine/contact-intake/internal/ratelimit"
	"github.com/shadowine/contact-intake/internal/server"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLimiterFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStorageFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNotifierFactory); err != nil {
		return nil, err
	}

	// Register rate limiter
	if err := container.Provide(func(f *factory.LimiterFactory) (ratelimit.Limiter, error) {
		return f.CreateLimiter()
	}); err != nil {
		return nil, err
	}

	// Register submission store
	if err := container.Provide(func(f *factory.StorageFactory) (core.SubmissionStore, error) {
		return f.CreateSubmissionStore()
	}); err != nil {
		return nil, err
	}

	// Register notifier
	if err := container.Provide(func(f *factory.NotifierFactory) (core.Notifier, error) {
		return f.CreateNotifier()
	}); err != nil {
		return nil, err
	}

	// Register human verifier
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.HumanVerifier, error) {
		recaptchaCfg := cfg.GetRecaptcha()
		timeout, err := cfg.GetDuration("recaptcha.timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid recaptcha timeout: %w", err)
		}
		return recaptcha.NewVerifier(recaptchaCfg.SecretKey, recaptchaCfg.VerifyURL, timeout, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register submission pipeline
	if err := container.Provide(func(
		verifier core.HumanVerifier,
		store core.SubmissionStore,
		notifier core.Notifier,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.SubmissionPipeline {
		secretConfigured := cfg.GetRecaptcha().SecretKey != ""
		return core.NewSubmissionPipeline(verifier, store, notifier, logger, secretConfigured)
	}); err != nil {
		return nil, err
	}

	// Register endpoint policies
	if err := container.Provide(func(cfg *config.Config) server.EndpointPolicies {
		return server.EndpointPolicies{
			Contact: core.Policy{
				Endpoint:            "contact",
				RequireVerification: cfg.GetBool("endpoints.contact.require_verification"),
				DefaultSource:       "contact-form",
			},
			WorkView: core.Policy{
				Endpoint:            "work-view",
				RequireVerification: cfg.GetBool("endpoints.work_view.require_verification"),
				DefaultSource:       "work-view-request",
			},
		}
	}); err != nil {
		return nil, err
	}

	// Register intake server
	if err := container.Provide(func(
		pipeline *core.SubmissionPipeline,
		limiter ratelimit.Limiter,
		policies server.EndpointPolicies,
		logger *zap.Logger,
		cfg *config.Config,
	) (*server.Server, error) {
		serverCfg := cfg.GetServer()
		readTimeout, err := cfg.GetDuration("server.read_timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid server read timeout: %w", err)
		}
		writeTimeout, err := cfg.GetDuration("server.write_timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid server write timeout: %w", err)
		}
		return server.New(
			pipeline,
			limiter,
			policies,
			logger,
			serverCfg.ListenAddress,
			int64(serverCfg.MaxBodyBytes),
			readTimeout,
			writeTimeout,
		), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
