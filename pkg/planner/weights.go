package planner

// Strategy selects what a route comparison weight optimises for.
type Strategy string

const (
	StrategyTime     Strategy = "time"
	StrategyDistance Strategy = "distance"
	StrategyChanges  Strategy = "changes"
)

// changeWeightPenalty dominates the changes strategy so that any extra
// change outweighs any plausible time difference.
const changeWeightPenalty = 1000.0

// RouteWeight computes the comparison weight for a route under a strategy.
// Lower is better. The changes strategy heavily penalises each change and
// non-directness, with total time as the remaining tie-break.
func RouteWeight(route RouteSummary, strategy Strategy) float64 {
	switch strategy {
	case StrategyDistance:
		return route.TotalDistanceKM
	case StrategyChanges:
		weight := float64(route.Changes) * changeWeightPenalty
		if route.Changes > 0 {
			weight += changeWeightPenalty
		}
		return weight + float64(route.TotalMinutes)
	default:
		return float64(route.TotalMinutes)
	}
}

// RouteSummary carries the figures the weight calculation needs.
type RouteSummary struct {
	TotalMinutes    int
	TotalDistanceKM float64
	Changes         int
}
