package fantasy

// UserProfile is a Sleeper account as seen by the public API.
type UserProfile struct {
	UserID      string  `json:"userId"`
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	IsBot       *bool   `json:"isBot,omitempty"`
}
