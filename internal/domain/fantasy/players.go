package fantasy

// Player is an entry in a sport's player directory. Inactive or placeholder entries may lack
// names, and free agents have no Team.
type Player struct {
	PlayerID         string   `json:"playerId"`
	FirstName        *string  `json:"firstName,omitempty"`
	LastName         *string  `json:"lastName,omitempty"`
	FullName         *string  `json:"fullName,omitempty"`
	Position         string   `json:"position"`
	Team             *string  `json:"team,omitempty"`
	Number           *int     `json:"number,omitempty"`
	Age              *int     `json:"age,omitempty"`
	Status           string   `json:"status"`
	FantasyPositions []string `json:"fantasyPositions"`
	YearsExp         *int     `json:"yearsExp,omitempty"`
	Metadata         *Object  `json:"metadata,omitempty"`
}

// DisplayName returns the best available name for the player.
func (p Player) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	first, last := "", ""
	if p.FirstName != nil {
		first = *p.FirstName
	}
	if p.LastName != nil {
		last = *p.LastName
	}
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return p.PlayerID
	}
}
