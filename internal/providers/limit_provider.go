package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
)

const rateLimitedName = "rate-limited"

var errNoProvider = errors.New("no provider configured")

// rateLimitedProvider wraps a Provider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     Provider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a Provider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next Provider, interval time.Duration, logger *slog.Logger) Provider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logDecorator(ctx, p.logger, slog.LevelWarn, rateLimitedName, op, "provider unavailable", nil)
		}
		return Unavailable(op, errNoProvider)
	}
	select {
	case <-ctx.Done():
		err := Unavailable(op, ctx.Err())
		logDecorator(ctx, p.logger, slog.LevelWarn, rateLimitedName, op, "rate-limited fetch canceled", err)
		return err
	case <-p.ticker.C:
	}
	logDecorator(ctx, p.logger, slog.LevelDebug, rateLimitedName, op, "rate-limited provider fetch", nil)
	return nil
}

func (p *rateLimitedProvider) FetchUser(ctx context.Context, usernameOrID string) (fantasy.UserProfile, error) {
	if err := p.wait(ctx, OpFetchUser); err != nil {
		return fantasy.UserProfile{}, err
	}
	return p.next.FetchUser(ctx, usernameOrID)
}

func (p *rateLimitedProvider) FetchUserLeagues(ctx context.Context, userID, sport, season string) ([]fantasy.League, error) {
	if err := p.wait(ctx, OpFetchUserLeagues); err != nil {
		return nil, err
	}
	return p.next.FetchUserLeagues(ctx, userID, sport, season)
}

func (p *rateLimitedProvider) FetchLeague(ctx context.Context, leagueID string) (fantasy.League, error) {
	if err := p.wait(ctx, OpFetchLeague); err != nil {
		return fantasy.League{}, err
	}
	return p.next.FetchLeague(ctx, leagueID)
}

func (p *rateLimitedProvider) FetchLeagueRosters(ctx context.Context, leagueID string) ([]fantasy.Roster, error) {
	if err := p.wait(ctx, OpFetchLeagueRosters); err != nil {
		return nil, err
	}
	return p.next.FetchLeagueRosters(ctx, leagueID)
}

func (p *rateLimitedProvider) FetchLeagueUsers(ctx context.Context, leagueID string) ([]fantasy.UserProfile, error) {
	if err := p.wait(ctx, OpFetchLeagueUsers); err != nil {
		return nil, err
	}
	return p.next.FetchLeagueUsers(ctx, leagueID)
}

func (p *rateLimitedProvider) FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]fantasy.Matchup, error) {
	if err := p.wait(ctx, OpFetchLeagueMatchups); err != nil {
		return nil, err
	}
	return p.next.FetchLeagueMatchups(ctx, leagueID, week)
}

func (p *rateLimitedProvider) FetchAllPlayers(ctx context.Context, sport string) (map[string]fantasy.Player, error) {
	if err := p.wait(ctx, OpFetchAllPlayers); err != nil {
		return nil, err
	}
	return p.next.FetchAllPlayers(ctx, sport)
}

func (p *rateLimitedProvider) FetchTrendingPlayers(ctx context.Context, query fantasy.TrendingQuery) ([]fantasy.TrendingEntry, error) {
	if err := p.wait(ctx, OpFetchTrendingPlayers); err != nil {
		return nil, err
	}
	return p.next.FetchTrendingPlayers(ctx, query)
}
