package providers

import (
	"context"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
)

// Operation names shared by clients, decorators, logs and metrics.
const (
	OpFetchUser            = "FetchUser"
	OpFetchUserLeagues     = "FetchUserLeagues"
	OpFetchLeague          = "FetchLeague"
	OpFetchLeagueRosters   = "FetchLeagueRosters"
	OpFetchLeagueUsers     = "FetchLeagueUsers"
	OpFetchLeagueMatchups  = "FetchLeagueMatchups"
	OpFetchAllPlayers      = "FetchAllPlayers"
	OpFetchTrendingPlayers = "FetchTrendingPlayers"
)

// UserProvider fetches user accounts and their leagues.
type UserProvider interface {
	FetchUser(ctx context.Context, usernameOrID string) (fantasy.UserProfile, error)
	FetchUserLeagues(ctx context.Context, userID, sport, season string) ([]fantasy.League, error)
}

// LeagueProvider fetches league-scoped data.
type LeagueProvider interface {
	FetchLeague(ctx context.Context, leagueID string) (fantasy.League, error)
	FetchLeagueRosters(ctx context.Context, leagueID string) ([]fantasy.Roster, error)
	FetchLeagueUsers(ctx context.Context, leagueID string) ([]fantasy.UserProfile, error)
	FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]fantasy.Matchup, error)
}

// PlayerProvider fetches the player directory and trending activity for a sport.
type PlayerProvider interface {
	FetchAllPlayers(ctx context.Context, sport string) (map[string]fantasy.Player, error)
	FetchTrendingPlayers(ctx context.Context, query fantasy.TrendingQuery) ([]fantasy.TrendingEntry, error)
}

// Provider combines all provider capabilities. Every method is a single read-only request;
// failures are always *Error.
type Provider interface {
	UserProvider
	LeagueProvider
	PlayerProvider
}
