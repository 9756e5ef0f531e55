package railway

// Per-station-hop constants used when a segment has no explicit figures.
const (
	EstimatedKMPerStation      = 15.0
	EstimatedMinutesPerStation = 10
)

// Placeholder figures for synthesized minimal-route hops.
const (
	PlaceholderHopKM      = 10.0
	PlaceholderHopMinutes = 15
)

// WalkingLineName is the line name assigned to walking segments.
const WalkingLineName = "WALKING"

// RouteSegment is one line-tagged leg of a route. TrainServiceID groups
// segments that are the same physical train even across line-name changes.
type RouteSegment struct {
	FromStation string `groups:"basic" json:"from_station"`
	ToStation   string `groups:"basic" json:"to_station"`
	LineName    string `groups:"basic" json:"line_name"`

	// StationCount is the number of hops the segment spans.
	StationCount int `groups:"basic" json:"station_count"`

	ServicePattern string `groups:"detailed" json:"service_pattern,omitempty"`
	TrainServiceID string `groups:"detailed" json:"train_service_id,omitempty"`
	TrainID        string `groups:"detailed" json:"train_id,omitempty"`

	IsWalking bool `groups:"basic" json:"is_walking,omitempty"`

	DistanceKM         float64 `groups:"basic" json:"distance_km"`
	JourneyTimeMinutes int     `groups:"basic" json:"journey_time_minutes"`
}

// EstimatedDistanceKM returns the explicit distance when set, otherwise a
// per-station estimate.
func (s *RouteSegment) EstimatedDistanceKM() float64 {
	if s.DistanceKM > 0 {
		return s.DistanceKM
	}
	return EstimatedKMPerStation * float64(s.StationCount)
}

// EstimatedJourneyTimeMinutes returns the explicit journey time when set,
// otherwise a per-station estimate.
func (s *RouteSegment) EstimatedJourneyTimeMinutes() int {
	if s.JourneyTimeMinutes > 0 {
		return s.JourneyTimeMinutes
	}
	return EstimatedMinutesPerStation * s.StationCount
}

// Route is a complete planned journey.
type Route struct {
	FromStation string `groups:"basic" json:"from_station"`
	ToStation   string `groups:"basic" json:"to_station"`

	FullPath []string        `groups:"basic" json:"full_path"`
	Segments []*RouteSegment `groups:"basic" json:"segments"`

	InterchangePoints []*InterchangePoint `groups:"basic" json:"interchange_points,omitempty"`

	TotalJourneyTimeMinutes int     `groups:"basic" json:"total_journey_time_minutes"`
	TotalDistanceKM         float64 `groups:"basic" json:"total_distance_km"`
	ChangesRequired         int     `groups:"basic" json:"changes_required"`

	// Valid is false when the route violates the caller's preferences, e.g.
	// it contains a walking hop while walking was to be avoided.
	Valid bool `groups:"basic" json:"valid"`
}

// IntermediateStations returns the path without its endpoints.
func (r *Route) IntermediateStations() []string {
	if len(r.FullPath) <= 2 {
		return nil
	}
	return r.FullPath[1 : len(r.FullPath)-1]
}

// Direct reports whether the journey needs no changes.
func (r *Route) Direct() bool {
	return r.ChangesRequired == 0
}
