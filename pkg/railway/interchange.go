package railway

// InterchangeType describes what a passenger has to do at a segment boundary.
type InterchangeType string

const (
	// InterchangeTypeTrainChange means the passenger must board a different train.
	InterchangeTypeTrainChange InterchangeType = "train_change"
	// InterchangeTypePlatformChange means a platform move but the same train.
	InterchangeTypePlatformChange InterchangeType = "platform_change"
	// InterchangeTypeThroughService means the same physical train continues
	// under a different line name.
	InterchangeTypeThroughService InterchangeType = "through_service"
	// InterchangeTypeWalkingConnection means a foot journey between stations.
	InterchangeTypeWalkingConnection InterchangeType = "walking_connection"
)

// InterchangePoint is a classified segment boundary on a route.
type InterchangePoint struct {
	StationName string          `groups:"basic" json:"station_name"`
	FromLine    string          `groups:"basic" json:"from_line"`
	ToLine      string          `groups:"basic" json:"to_line"`
	Type        InterchangeType `groups:"basic" json:"interchange_type"`

	WalkingTimeMinutes int `groups:"basic" json:"walking_time_minutes"`

	// IsUserJourneyChange is true only when the passenger must physically act.
	IsUserJourneyChange bool `groups:"basic" json:"is_user_journey_change"`

	Coordinates *Coordinates `groups:"detailed" json:"coordinates,omitempty"`
	Description string       `groups:"detailed" json:"description,omitempty"`
}

// InterchangeConnection records, for one station, whether moving between two
// line names requires the passenger to change trains. RequiresChange false
// marks a known through service.
type InterchangeConnection struct {
	FromLine       string `json:"from_line"`
	ToLine         string `json:"to_line"`
	RequiresChange bool   `json:"requires_change"`
}

// Matches reports whether the record covers the given line pair in either
// direction. Through-service records are symmetric.
func (c InterchangeConnection) Matches(line1 string, line2 string) bool {
	return (c.FromLine == line1 && c.ToLine == line2) ||
		(c.FromLine == line2 && c.ToLine == line1)
}

// WalkingConnection is a foot link between two stations substituting for a
// rail link. Stored symmetrically for both directions.
type WalkingConnection struct {
	FromStation string  `json:"from_station"`
	ToStation   string  `json:"to_station"`
	DistanceKM  float64 `json:"distance_km"`
	TimeMinutes int     `json:"time_minutes"`
}

// StationPair is the unordered lookup key for walking connections; callers
// insert both orientations.
type StationPair struct {
	From string
	To   string
}
