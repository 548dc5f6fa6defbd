package testutil

import (
	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
)

// Ptr returns a pointer to v; handy for optional fixture fields.
func Ptr[T any](v T) *T {
	return &v
}

// SampleUser returns the user served by the fake Sleeper server.
func SampleUser() fantasy.UserProfile {
	return fantasy.UserProfile{
		UserID:      FakeUserID,
		Username:    FakeUsername,
		DisplayName: Ptr("SleeperUser"),
		IsBot:       Ptr(false),
	}
}

// SampleLeague returns a minimal league fixture with the provided id.
func SampleLeague(id string) fantasy.League {
	return fantasy.League{
		LeagueID:        id,
		Name:            "Sleeperbot Friends League",
		Season:          FakeSeason,
		SeasonType:      "regular",
		Sport:           "nfl",
		Status:          "in_season",
		TotalRosters:    12,
		Settings:        fantasy.NewObject("num_teams", 12),
		RosterPositions: []string{"QB", "RB", "WR"},
	}
}

// SampleMatchup returns a matchup whose starters and starter points line up.
func SampleMatchup(rosterID int) fantasy.Matchup {
	return fantasy.Matchup{
		RosterID:       rosterID,
		MatchupID:      Ptr(1),
		Points:         12.5,
		Starters:       []string{"4034", "3086"},
		StartersPoints: []float64{10.5, 2.0},
		Players:        []string{"4034", "3086", "9999"},
		PlayersPoints:  map[string]float64{"4034": 10.5, "3086": 2.0, "9999": 0},
	}
}

// SamplePlayer returns a player fixture with the provided id.
func SamplePlayer(id string) fantasy.Player {
	return fantasy.Player{
		PlayerID:         id,
		FirstName:        Ptr("Christian"),
		LastName:         Ptr("McCaffrey"),
		Position:         "RB",
		Team:             Ptr("SF"),
		Status:           "Active",
		FantasyPositions: []string{"RB"},
	}
}
