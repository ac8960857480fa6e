package ratelimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/config"
	"github.com/chainfolio/price-indexer/internal/logger"
)

// Limiter throttles outbound requests to external providers. The limit is
// shared across replicas through Redis; a local token bucket takes over at a
// reduced rate when Redis is unreachable.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Acquire blocks until a token for the named provider is available or the
	// context is done
	Acquire(ctx context.Context, provider string) error

	// Close releases the limiter's Redis connection
	Close() error
}

// providerLimiter holds the rate limiting state for a single provider
type providerLimiter struct {
	name string
	cfg  config.ProviderLimit

	// preFilter runs at the provider's full rate before each Redis round-trip
	// to keep Redis pressure proportional to the allowed throughput
	preFilter *rate.Limiter

	// local serves when Redis is unreachable, at a reduced per-replica rate
	local *rate.Limiter
}

// limiter is the concrete Limiter implementation
type limiter struct {
	cfg         config.RateLimiterConfig
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock
	providers   map[string]*providerLimiter

	mu        sync.Mutex
	redisDown bool
	downSince time.Time
}

// NewLimiter creates a limiter over the configured providers
func NewLimiter(cfg config.RateLimiterConfig, distributed adapter.RedisRateLimiter, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	providers := make(map[string]*providerLimiter, len(cfg.Providers))
	for name, providerCfg := range cfg.Providers {
		// Minimum local rate of 1/s so a degraded limiter never deadlocks
		localRate := max(float64(providerCfg.RequestsPerSecond)*cfg.LocalFallbackMultiplier, 1.0)

		providers[name] = &providerLimiter{
			name:      name,
			cfg:       providerCfg,
			preFilter: rate.NewLimiter(rate.Limit(providerCfg.RequestsPerSecond), providerCfg.Burst),
			local:     rate.NewLimiter(rate.Limit(localRate), providerCfg.Burst),
		}
	}

	logger.Info("rate limiter initialized",
		zap.Int("providers", len(providers)),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return &limiter{
		cfg:         cfg,
		distributed: distributed,
		clock:       clock,
		providers:   providers,
	}, nil
}

// Acquire blocks until a token for the named provider is available
func (l *limiter) Acquire(ctx context.Context, provider string) error {
	pl, ok := l.providers[provider]
	if !ok {
		return fmt.Errorf("provider %q not configured", provider)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if l.distributedUsable() {
			allowed, retryAfter, err := l.tryDistributed(ctx, pl)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				l.markRedisDown()
				if !l.cfg.EnableLocalFallback {
					return fmt.Errorf("distributed rate limiter unavailable: %w", err)
				}
				logger.Warn("distributed rate limiter error, falling back to local",
					zap.String("provider", pl.name), zap.Error(err))
			case allowed:
				l.markRedisUp()
				return nil
			default:
				// Over the shared limit. Jitter spreads replicas' retries over
				// 50-150% of the advertised wait.
				jitter := time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-l.clock.After(jitter):
				}
				continue
			}
		}

		return pl.local.Wait(ctx)
	}
}

// tryDistributed attempts to take one token from the shared limiter
func (l *limiter) tryDistributed(ctx context.Context, pl *providerLimiter) (allowed bool, retryAfter time.Duration, err error) {
	if err := pl.preFilter.Wait(ctx); err != nil {
		return false, 0, err
	}

	key := l.cfg.KeyPrefix + pl.name
	res, err := l.distributed.Allow(ctx, key, redis_rate.PerSecond(pl.cfg.RequestsPerSecond))
	if err != nil {
		return false, 0, err
	}
	if res.Allowed == 0 {
		logger.Debug("rate limit token unavailable, waiting",
			zap.String("provider", pl.name),
			zap.Duration("retry_after", res.RetryAfter),
			zap.Int("remaining", res.Remaining),
		)
		return false, res.RetryAfter, nil
	}
	return true, 0, nil
}

// distributedUsable reports whether the shared limiter should be consulted.
// After a failure it is retried once the recovery interval has passed.
func (l *limiter) distributedUsable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.redisDown {
		return true
	}
	return l.clock.Since(l.downSince) >= l.cfg.RecoveryInterval
}

func (l *limiter) markRedisDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.redisDown = true
	l.downSince = l.clock.Now()
}

func (l *limiter) markRedisUp() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.redisDown {
		l.redisDown = false
		logger.Info("distributed rate limiter restored")
	}
}

// Close releases the limiter's Redis connection
func (l *limiter) Close() error {
	return l.distributed.Close()
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimiterConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("at least one provider must be configured")
	}

	for name, provider := range cfg.Providers {
		if provider.RequestsPerSecond <= 0 {
			return fmt.Errorf("provider %s: requests_per_second must be positive", name)
		}
		if provider.Burst <= 0 {
			provider.Burst = provider.RequestsPerSecond
		}
		cfg.Providers[name] = provider
	}

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "price-indexer:limiter:"
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}
	if cfg.RecoveryInterval <= 0 {
		cfg.RecoveryInterval = 10 * time.Second
	}

	return nil
}
