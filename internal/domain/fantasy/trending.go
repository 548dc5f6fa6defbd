package fantasy

// TrendType selects add or drop activity for trending players.
type TrendType string

const (
	TrendAdd  TrendType = "add"
	TrendDrop TrendType = "drop"
)

const (
	DefaultTrendingLookbackHours = 24
	DefaultTrendingLimit         = 25
)

// TrendingEntry is a trending record. The provider does not fix its schema
// (currently player_id and count), so it stays untyped.
type TrendingEntry = *Object

// TrendingQuery identifies a trending-players request.
type TrendingQuery struct {
	Sport         string    `json:"sport"`
	Type          TrendType `json:"type"`
	LookbackHours int       `json:"lookbackHours"`
	Limit         int       `json:"limit"`
}

// TrendingOption overrides a TrendingQuery default.
type TrendingOption func(*TrendingQuery)

// WithLookbackHours sets the activity window in hours.
func WithLookbackHours(hours int) TrendingOption {
	return func(q *TrendingQuery) { q.LookbackHours = hours }
}

// WithLimit sets the maximum number of entries returned.
func WithLimit(limit int) TrendingOption {
	return func(q *TrendingQuery) { q.Limit = limit }
}

// NewTrendingQuery builds a query with a 24 hour lookback and a limit of 25 unless overridden.
func NewTrendingQuery(sport string, trend TrendType, opts ...TrendingOption) TrendingQuery {
	q := TrendingQuery{
		Sport:         sport,
		Type:          trend,
		LookbackHours: DefaultTrendingLookbackHours,
		Limit:         DefaultTrendingLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&q)
		}
	}
	return q
}
