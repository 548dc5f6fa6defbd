package sleeper

import "github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"

// Wire shapes as Sleeper sends them. Pointers distinguish absent or null from zero values.

type userDTO struct {
	UserID      *string `json:"user_id"`
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	IsBot       *bool   `json:"is_bot"`
}

type leagueDTO struct {
	LeagueID         *string         `json:"league_id"`
	Name             *string         `json:"name"`
	Avatar           *string         `json:"avatar"`
	Season           *string         `json:"season"`
	SeasonType       *string         `json:"season_type"`
	Sport            *string         `json:"sport"`
	Status           *string         `json:"status"`
	TotalRosters     *int            `json:"total_rosters"`
	Settings         *fantasy.Object `json:"settings"`
	ScoringSettings  *fantasy.Object `json:"scoring_settings"`
	RosterPositions  []string        `json:"roster_positions"`
	DraftID          *string         `json:"draft_id"`
	PreviousLeagueID *string         `json:"previous_league_id"`
}

type rosterDTO struct {
	RosterID  *int            `json:"roster_id"`
	OwnerID   *string         `json:"owner_id"`
	LeagueID  *string         `json:"league_id"`
	Players   []string        `json:"players"`
	Starters  []string        `json:"starters"`
	Reserve   []string        `json:"reserve"`
	Taxi      []string        `json:"taxi"`
	Settings  *fantasy.Object `json:"settings"`
	PlayerMap *fantasy.Object `json:"player_map"`
}

type matchupDTO struct {
	RosterID       *int               `json:"roster_id"`
	MatchupID      *int               `json:"matchup_id"`
	Points         *float64           `json:"points"`
	CustomPoints   *float64           `json:"custom_points"`
	Starters       []string           `json:"starters"`
	StartersPoints []float64          `json:"starters_points"`
	Players        []string           `json:"players"`
	PlayersPoints  map[string]float64 `json:"players_points"`
}

type playerDTO struct {
	PlayerID         *string         `json:"player_id"`
	FirstName        *string         `json:"first_name"`
	LastName         *string         `json:"last_name"`
	FullName         *string         `json:"full_name"`
	Position         *string         `json:"position"`
	Team             *string         `json:"team"`
	Number           *int            `json:"number"`
	Age              *int            `json:"age"`
	Status           *string         `json:"status"`
	FantasyPositions []string        `json:"fantasy_positions"`
	YearsExp         *int            `json:"years_exp"`
	Metadata         *fantasy.Object `json:"metadata"`
}
