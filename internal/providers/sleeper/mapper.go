package sleeper

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
)

var (
	errMissingUserID   = errors.New("sleeper: user without user_id")
	errMissingLeagueID = errors.New("sleeper: league without league_id")
	errMissingRosterID = errors.New("sleeper: roster without roster_id")
)

func mapUser(u userDTO) (fantasy.UserProfile, error) {
	if u.UserID == nil || *u.UserID == "" {
		return fantasy.UserProfile{}, errMissingUserID
	}
	return fantasy.UserProfile{
		UserID:      *u.UserID,
		Username:    deref(u.Username),
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		IsBot:       u.IsBot,
	}, nil
}

func mapLeague(l leagueDTO) (fantasy.League, error) {
	if l.LeagueID == nil || *l.LeagueID == "" {
		return fantasy.League{}, errMissingLeagueID
	}
	return fantasy.League{
		LeagueID:         *l.LeagueID,
		Name:             deref(l.Name),
		Avatar:           l.Avatar,
		Season:           deref(l.Season),
		SeasonType:       deref(l.SeasonType),
		Sport:            deref(l.Sport),
		Status:           deref(l.Status),
		TotalRosters:     derefInt(l.TotalRosters),
		Settings:         l.Settings,
		ScoringSettings:  l.ScoringSettings,
		RosterPositions:  orEmpty(l.RosterPositions),
		DraftID:          l.DraftID,
		PreviousLeagueID: l.PreviousLeagueID,
	}, nil
}

func mapRoster(r rosterDTO) (fantasy.Roster, error) {
	if r.RosterID == nil {
		return fantasy.Roster{}, errMissingRosterID
	}
	return fantasy.Roster{
		RosterID:  *r.RosterID,
		OwnerID:   r.OwnerID,
		LeagueID:  deref(r.LeagueID),
		Players:   orEmpty(r.Players),
		Starters:  orEmpty(r.Starters),
		Reserve:   orEmpty(r.Reserve),
		Taxi:      r.Taxi,
		Settings:  r.Settings,
		PlayerMap: r.PlayerMap,
	}, nil
}

func mapMatchup(m matchupDTO) (fantasy.Matchup, error) {
	if m.RosterID == nil {
		return fantasy.Matchup{}, errMissingRosterID
	}
	out := fantasy.Matchup{
		RosterID:       *m.RosterID,
		MatchupID:      m.MatchupID,
		CustomPoints:   m.CustomPoints,
		Starters:       orEmpty(m.Starters),
		StartersPoints: m.StartersPoints,
		Players:        orEmpty(m.Players),
		PlayersPoints:  m.PlayersPoints,
	}
	if m.Points != nil {
		out.Points = *m.Points
	}
	if out.StartersPoints == nil {
		out.StartersPoints = []float64{}
	}
	if out.PlayersPoints == nil {
		out.PlayersPoints = map[string]float64{}
	}
	if err := out.Validate(); err != nil {
		return fantasy.Matchup{}, fmt.Errorf("sleeper: %w", err)
	}
	return out, nil
}

// mapPlayer takes the directory key as the id when player_id is absent and rejects a mismatch.
func mapPlayer(key string, p playerDTO) (fantasy.Player, error) {
	id := key
	if p.PlayerID != nil && *p.PlayerID != "" {
		if *p.PlayerID != key {
			return fantasy.Player{}, fmt.Errorf("sleeper: player keyed %q has player_id %q", key, *p.PlayerID)
		}
		id = *p.PlayerID
	}
	return fantasy.Player{
		PlayerID:         id,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		FullName:         p.FullName,
		Position:         deref(p.Position),
		Team:             p.Team,
		Number:           p.Number,
		Age:              p.Age,
		Status:           deref(p.Status),
		FantasyPositions: orEmpty(p.FantasyPositions),
		YearsExp:         p.YearsExp,
		Metadata:         p.Metadata,
	}, nil
}

func mapAll[D, T any](in []D, mapFn func(D) (T, error)) ([]T, error) {
	out := make([]T, 0, len(in))
	for i, item := range in {
		mapped, err := mapFn(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, mapped)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
