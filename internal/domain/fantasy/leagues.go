package fantasy

// League captures league configuration for a single season.
type League struct {
	LeagueID         string   `json:"leagueId"`
	Name             string   `json:"name"`
	Avatar           *string  `json:"avatar,omitempty"`
	Season           string   `json:"season"`
	SeasonType       string   `json:"seasonType"`
	Sport            string   `json:"sport"`
	Status           string   `json:"status"`
	TotalRosters     int      `json:"totalRosters"`
	Settings         *Object  `json:"settings,omitempty"`
	ScoringSettings  *Object  `json:"scoringSettings,omitempty"`
	RosterPositions  []string `json:"rosterPositions"`
	DraftID          *string  `json:"draftId,omitempty"`
	PreviousLeagueID *string  `json:"previousLeagueId,omitempty"`
}
