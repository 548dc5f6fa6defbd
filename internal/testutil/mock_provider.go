package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

// MockProvider is a testify mock of providers.Provider. Expectations match on every
// argument except the context.
type MockProvider struct {
	mock.Mock
}

var _ providers.Provider = (*MockProvider)(nil)

func (m *MockProvider) FetchUser(ctx context.Context, usernameOrID string) (fantasy.UserProfile, error) {
	args := m.Called(usernameOrID)

	var res fantasy.UserProfile
	if args.Get(0) != nil {
		res = args.Get(0).(fantasy.UserProfile)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchUserLeagues(ctx context.Context, userID, sport, season string) ([]fantasy.League, error) {
	args := m.Called(userID, sport, season)

	var res []fantasy.League
	if args.Get(0) != nil {
		res = args.Get(0).([]fantasy.League)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchLeague(ctx context.Context, leagueID string) (fantasy.League, error) {
	args := m.Called(leagueID)

	var res fantasy.League
	if args.Get(0) != nil {
		res = args.Get(0).(fantasy.League)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchLeagueRosters(ctx context.Context, leagueID string) ([]fantasy.Roster, error) {
	args := m.Called(leagueID)

	var res []fantasy.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]fantasy.Roster)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchLeagueUsers(ctx context.Context, leagueID string) ([]fantasy.UserProfile, error) {
	args := m.Called(leagueID)

	var res []fantasy.UserProfile
	if args.Get(0) != nil {
		res = args.Get(0).([]fantasy.UserProfile)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]fantasy.Matchup, error) {
	args := m.Called(leagueID, week)

	var res []fantasy.Matchup
	if args.Get(0) != nil {
		res = args.Get(0).([]fantasy.Matchup)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchAllPlayers(ctx context.Context, sport string) (map[string]fantasy.Player, error) {
	args := m.Called(sport)

	var res map[string]fantasy.Player
	if args.Get(0) != nil {
		res = args.Get(0).(map[string]fantasy.Player)
	}
	return res, args.Error(1)
}

func (m *MockProvider) FetchTrendingPlayers(ctx context.Context, query fantasy.TrendingQuery) ([]fantasy.TrendingEntry, error) {
	args := m.Called(query)

	var res []fantasy.TrendingEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]fantasy.TrendingEntry)
	}
	return res, args.Error(1)
}
