package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 10 * time.Second
)

// retryingProvider wraps a Provider with exponential backoff. Only ProviderUnavailable failures
// are retried; a RateLimitError's Retry-After stretches the next wait.
type retryingProvider struct {
	inner        Provider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner Provider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// retryAfterBackOff waits at least the last Retry-After seen.
type retryAfterBackOff struct {
	backoff.BackOff
	retryAfter *time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if *b.retryAfter > next {
		return *b.retryAfter
	}
	return next
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero       T
		attempt    int
		retryAfter time.Duration
	)
	logger := logging.FromContext(ctx, r.logger)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&retryAfterBackOff{BackOff: r.newBackOff(), retryAfter: &retryAfter}, uint64(r.maxAttempts-1)),
		ctx,
	)

	operation := func() (T, error) {
		attempt++
		retryAfter = 0
		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrProviderUnavailable) {
			return res, backoff.Permanent(err)
		}
		if rl, ok := AsRateLimitError(err); ok {
			retryAfter = rl.RetryAfter
			r.metrics.RecordRateLimit(op, rl.RetryAfter)
		}
		return res, err
	}
	notify := func(err error, wait time.Duration) {
		logDecorator(ctx, logger, slog.LevelWarn, r.providerName, op, "provider fetch retry", err,
			slog.Int(logging.FieldAttempt, attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("wait", wait),
		)
	}

	res, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err == nil {
		return res, nil
	}
	if _, ok := AsError(err); !ok {
		// Context expiry between attempts surfaces as a bare context error.
		err = Unavailable(op, err)
	}
	if errors.Is(err, ErrProviderUnavailable) {
		logDecorator(ctx, logger, slog.LevelWarn, r.providerName, op, "provider fetch failed", err,
			slog.Int("attempts", attempt),
		)
	}
	return zero, err
}

func (r *retryingProvider) FetchUser(ctx context.Context, usernameOrID string) (fantasy.UserProfile, error) {
	return withRetry(ctx, r, OpFetchUser, func(ctx context.Context) (fantasy.UserProfile, error) {
		return r.inner.FetchUser(ctx, usernameOrID)
	})
}

func (r *retryingProvider) FetchUserLeagues(ctx context.Context, userID, sport, season string) ([]fantasy.League, error) {
	return withRetry(ctx, r, OpFetchUserLeagues, func(ctx context.Context) ([]fantasy.League, error) {
		return r.inner.FetchUserLeagues(ctx, userID, sport, season)
	})
}

func (r *retryingProvider) FetchLeague(ctx context.Context, leagueID string) (fantasy.League, error) {
	return withRetry(ctx, r, OpFetchLeague, func(ctx context.Context) (fantasy.League, error) {
		return r.inner.FetchLeague(ctx, leagueID)
	})
}

func (r *retryingProvider) FetchLeagueRosters(ctx context.Context, leagueID string) ([]fantasy.Roster, error) {
	return withRetry(ctx, r, OpFetchLeagueRosters, func(ctx context.Context) ([]fantasy.Roster, error) {
		return r.inner.FetchLeagueRosters(ctx, leagueID)
	})
}

func (r *retryingProvider) FetchLeagueUsers(ctx context.Context, leagueID string) ([]fantasy.UserProfile, error) {
	return withRetry(ctx, r, OpFetchLeagueUsers, func(ctx context.Context) ([]fantasy.UserProfile, error) {
		return r.inner.FetchLeagueUsers(ctx, leagueID)
	})
}

func (r *retryingProvider) FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]fantasy.Matchup, error) {
	return withRetry(ctx, r, OpFetchLeagueMatchups, func(ctx context.Context) ([]fantasy.Matchup, error) {
		return r.inner.FetchLeagueMatchups(ctx, leagueID, week)
	})
}

func (r *retryingProvider) FetchAllPlayers(ctx context.Context, sport string) (map[string]fantasy.Player, error) {
	return withRetry(ctx, r, OpFetchAllPlayers, func(ctx context.Context) (map[string]fantasy.Player, error) {
		return r.inner.FetchAllPlayers(ctx, sport)
	})
}

func (r *retryingProvider) FetchTrendingPlayers(ctx context.Context, query fantasy.TrendingQuery) ([]fantasy.TrendingEntry, error) {
	return withRetry(ctx, r, OpFetchTrendingPlayers, func(ctx context.Context) ([]fantasy.TrendingEntry, error) {
		return r.inner.FetchTrendingPlayers(ctx, query)
	})
}
