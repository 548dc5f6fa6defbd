package fantasy

import (
	"context"
	"log/slog"
	"time"

	domainfantasy "github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

// Service exposes one method per Sleeper query. It adds timing, metrics and failure logs around
// the provider and returns results and errors unchanged.
type Service struct {
	provider providers.Provider
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewService constructs a Service over the given provider. logger and recorder may be nil.
func NewService(provider providers.Provider, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
		metrics:  recorder,
	}
}

// User returns the account for a username or user id.
func (s *Service) User(ctx context.Context, usernameOrID string) (domainfantasy.UserProfile, error) {
	return observe(ctx, s, providers.OpFetchUser, []slog.Attr{slog.String(logging.FieldUserID, usernameOrID)},
		func(ctx context.Context) (domainfantasy.UserProfile, error) {
			return s.provider.FetchUser(ctx, usernameOrID)
		})
}

// UserLeagues returns the leagues a user joined for a sport and season.
func (s *Service) UserLeagues(ctx context.Context, userID, sport, season string) ([]domainfantasy.League, error) {
	attrs := []slog.Attr{
		slog.String(logging.FieldUserID, userID),
		slog.String(logging.FieldSport, sport),
		slog.String(logging.FieldSeason, season),
	}
	return observe(ctx, s, providers.OpFetchUserLeagues, attrs, func(ctx context.Context) ([]domainfantasy.League, error) {
		return s.provider.FetchUserLeagues(ctx, userID, sport, season)
	})
}

// League returns a league's configuration.
func (s *Service) League(ctx context.Context, leagueID string) (domainfantasy.League, error) {
	return observe(ctx, s, providers.OpFetchLeague, []slog.Attr{slog.String(logging.FieldLeagueID, leagueID)},
		func(ctx context.Context) (domainfantasy.League, error) {
			return s.provider.FetchLeague(ctx, leagueID)
		})
}

// LeagueRosters returns every roster in a league.
func (s *Service) LeagueRosters(ctx context.Context, leagueID string) ([]domainfantasy.Roster, error) {
	return observe(ctx, s, providers.OpFetchLeagueRosters, []slog.Attr{slog.String(logging.FieldLeagueID, leagueID)},
		func(ctx context.Context) ([]domainfantasy.Roster, error) {
			return s.provider.FetchLeagueRosters(ctx, leagueID)
		})
}

// LeagueUsers returns the members of a league.
func (s *Service) LeagueUsers(ctx context.Context, leagueID string) ([]domainfantasy.UserProfile, error) {
	return observe(ctx, s, providers.OpFetchLeagueUsers, []slog.Attr{slog.String(logging.FieldLeagueID, leagueID)},
		func(ctx context.Context) ([]domainfantasy.UserProfile, error) {
			return s.provider.FetchLeagueUsers(ctx, leagueID)
		})
}

// LeagueMatchups returns one week of matchups.
func (s *Service) LeagueMatchups(ctx context.Context, leagueID string, week int) ([]domainfantasy.Matchup, error) {
	attrs := []slog.Attr{
		slog.String(logging.FieldLeagueID, leagueID),
		slog.Int(logging.FieldWeek, week),
	}
	return observe(ctx, s, providers.OpFetchLeagueMatchups, attrs, func(ctx context.Context) ([]domainfantasy.Matchup, error) {
		return s.provider.FetchLeagueMatchups(ctx, leagueID, week)
	})
}

// AllPlayers returns the full player directory for a sport.
func (s *Service) AllPlayers(ctx context.Context, sport string) (map[string]domainfantasy.Player, error) {
	players, err := observe(ctx, s, providers.OpFetchAllPlayers, []slog.Attr{slog.String(logging.FieldSport, sport)},
		func(ctx context.Context) (map[string]domainfantasy.Player, error) {
			return s.provider.FetchAllPlayers(ctx, sport)
		})
	if err == nil {
		s.metrics.RecordPlayersDecoded(sport, len(players))
	}
	return players, err
}

// TrendingPlayers returns trending adds or drops for the query.
func (s *Service) TrendingPlayers(ctx context.Context, query domainfantasy.TrendingQuery) ([]domainfantasy.TrendingEntry, error) {
	attrs := []slog.Attr{
		slog.String(logging.FieldSport, query.Sport),
		slog.String("trend_type", string(query.Type)),
		slog.Int("lookback_hours", query.LookbackHours),
		slog.Int("limit", query.Limit),
	}
	return observe(ctx, s, providers.OpFetchTrendingPlayers, attrs, func(ctx context.Context) ([]domainfantasy.TrendingEntry, error) {
		return s.provider.FetchTrendingPlayers(ctx, query)
	})
}

func observe[T any](ctx context.Context, s *Service, op string, attrs []slog.Attr, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	res, err := fn(ctx)
	duration := time.Since(start)

	code := providers.CodeOf(err)
	s.metrics.RecordProviderAttempt(op, duration, err, code)
	if err != nil {
		s.logFailure(ctx, op, code, duration, err, attrs)
	}
	return res, err
}

func (s *Service) logFailure(ctx context.Context, op, code string, duration time.Duration, err error, attrs []slog.Attr) {
	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return
	}
	attrs = append(attrs,
		slog.String(logging.FieldOperation, op),
		slog.String(logging.FieldErrorCode, code),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		slog.String("error", err.Error()),
	)
	if pErr, ok := providers.AsError(err); ok && pErr.Cause() != nil {
		attrs = append(attrs, slog.String("cause", pErr.Cause().Error()))
	}
	logger.LogAttrs(ctx, slog.LevelWarn, "provider call failed", attrs...)
}
