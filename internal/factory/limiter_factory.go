package factory

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/config"
	"github.com/shadowine/contact-intake/internal/ratelimit"
)

// LimiterFactory creates rate limiters based on configuration
type LimiterFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLimiterFactory creates a new limiter factory
func NewLimiterFactory(cfg *config.Config, logger *zap.Logger) *LimiterFactory {
	return &LimiterFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLimiter creates a rate limiter based on the configuration
func (f *LimiterFactory) CreateLimiter() (ratelimit.Limiter, error) {
	rlCfg := f.cfg.GetRateLimit()

	window, err := f.cfg.GetDuration("ratelimit.window")
	if err != nil {
		return nil, fmt.Errorf("invalid rate-limit window: %w", err)
	}

	switch rlCfg.Backend {
	case "memory":
		sweepFreq, err := f.cfg.GetDuration("ratelimit.sweep_frequency")
		if err != nil {
			return nil, fmt.Errorf("invalid rate-limit sweep frequency: %w", err)
		}
		store := ratelimit.NewMemoryStore(f.logger, sweepFreq)
		return ratelimit.NewFixedWindowLimiter(store, rlCfg.MaxRequests, window, nil), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: rlCfg.RedisAddr})
		return ratelimit.NewRedisLimiter(client, rlCfg.RedisKeyPrefix, rlCfg.MaxRequests, window, nil), nil
	default:
		return nil, fmt.Errorf("unsupported rate-limit backend: %s", rlCfg.Backend)
	}
}
