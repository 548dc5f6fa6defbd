package fantasy

import "fmt"

// Matchup is a roster's scoring line for one week. Rosters sharing a MatchupID play each other.
// StartersPoints is index-aligned with Starters.
type Matchup struct {
	RosterID       int                `json:"rosterId"`
	MatchupID      *int               `json:"matchupId,omitempty"`
	Points         float64            `json:"points"`
	CustomPoints   *float64           `json:"customPoints,omitempty"`
	Starters       []string           `json:"starters"`
	StartersPoints []float64          `json:"startersPoints"`
	Players        []string           `json:"players"`
	PlayersPoints  map[string]float64 `json:"playersPoints"`
}

// Validate checks the starters/starters-points alignment.
func (m Matchup) Validate() error {
	if len(m.Starters) != len(m.StartersPoints) {
		return fmt.Errorf("roster %d: %d starters but %d starter points", m.RosterID, len(m.Starters), len(m.StartersPoints))
	}
	return nil
}

// StarterPoints pairs each starter with the points scored in that lineup slot.
func (m Matchup) StarterPoints() map[string]float64 {
	out := make(map[string]float64, len(m.Starters))
	for i, id := range m.Starters {
		if i < len(m.StartersPoints) {
			out[id] = m.StartersPoints[i]
		}
	}
	return out
}
