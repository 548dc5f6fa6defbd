package server

import (
	"log/slog"

	"github.com/preston-bernstein/fantasy-data-service/internal/config"
	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers/sleeper"
)

// providerFactory assembles the Sleeper client with the optional wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the provider and a release func that stops any background resources.
func (f providerFactory) build(cfg config.Config) (providers.Provider, func()) {
	client := sleeper.NewClient(sleeper.Config{
		BaseURL:   cfg.Sleeper.BaseURL,
		Timeout:   cfg.Sleeper.Timeout,
		UserAgent: cfg.Sleeper.UserAgent,
		Logger:    f.logger,
	})
	return f.wrap(cfg.Resilience, client)
}

// wrap applies the resilience wrappers enabled in cfg. Both are off by default so failures reach
// callers after a single attempt.
func (f providerFactory) wrap(cfg config.ResilienceConfig, base providers.Provider) (providers.Provider, func()) {
	provider := base
	release := func() {}
	if cfg.RateLimitEnabled() {
		provider = providers.NewRateLimitedProvider(provider, cfg.MinInterval, f.logger)
		if c, ok := provider.(interface{ Close() }); ok {
			release = c.Close
		}
	}
	if cfg.RetryEnabled() {
		provider = providers.NewRetryingProvider(provider, f.logger, f.metrics, sleeper.Name, cfg.RetryAttempts, cfg.RetryBackoff)
	}
	return provider, release
}

// BuildProvider assembles the configured provider for entrypoints that do not run the HTTP server.
func BuildProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (providers.Provider, func()) {
	return newProviderFactory(logger, recorder).build(cfg)
}
