package fantasy

// Roster is one team's holdings within a league. OwnerID is nil for unclaimed rosters.
type Roster struct {
	RosterID  int      `json:"rosterId"`
	OwnerID   *string  `json:"ownerId,omitempty"`
	LeagueID  string   `json:"leagueId"`
	Players   []string `json:"players"`
	Starters  []string `json:"starters"`
	Reserve   []string `json:"reserve"`
	Taxi      []string `json:"taxi,omitempty"`
	Settings  *Object  `json:"settings,omitempty"`
	PlayerMap *Object  `json:"playerMap,omitempty"`
}
