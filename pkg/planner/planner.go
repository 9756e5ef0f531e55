package planner

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/railplan/railplan/pkg/config"
	"github.com/railplan/railplan/pkg/dataset"
	"github.com/railplan/railplan/pkg/interchange"
	"github.com/railplan/railplan/pkg/railway"
)

// SearchLimits bound the pattern-aware search. Zero values are replaced by
// the configuration defaults in New.
type SearchLimits struct {
	Timeout       time.Duration
	MaxIterations int
	MaxPathLength int
	MaxRoutes     int
	MaxChanges    int
}

func limitsFromConfig(search config.SearchConfig) SearchLimits {
	return SearchLimits{
		Timeout:       time.Duration(search.TimeoutSeconds) * time.Second,
		MaxIterations: search.MaxIterations,
		MaxPathLength: search.MaxPathLength,
		MaxRoutes:     search.MaxRoutes,
		MaxChanges:    search.MaxChanges,
	}
}

// Preferences shape a single route calculation.
type Preferences struct {
	AvoidWalking bool
	MaxChanges   int // 0 means the configured default
	Optimize     Strategy
}

// Planner plans journeys over a loaded dataset. Each instance owns its own
// network graph cache; independent planners never share state.
type Planner struct {
	loader     *dataset.Loader
	classifier *interchange.Classifier
	limits     SearchLimits

	graph      atomic.Pointer[railway.NetworkGraph]
	graphMutex sync.Mutex
}

// New wires a planner over an already-constructed loader.
func New(loader *dataset.Loader, limits SearchLimits) *Planner {
	defaults := limitsFromConfig(config.Defaults().Search)
	if limits.Timeout == 0 {
		limits.Timeout = defaults.Timeout
	}
	if limits.MaxIterations == 0 {
		limits.MaxIterations = defaults.MaxIterations
	}
	if limits.MaxPathLength == 0 {
		limits.MaxPathLength = defaults.MaxPathLength
	}
	if limits.MaxRoutes == 0 {
		limits.MaxRoutes = defaults.MaxRoutes
	}
	if limits.MaxChanges == 0 {
		limits.MaxChanges = defaults.MaxChanges
	}

	return &Planner{
		loader:     loader,
		classifier: interchange.New(loader),
		limits:     limits,
	}
}

// NewFromConfig constructs a loader from the configuration, loads the
// dataset and returns a planner over it.
func NewFromConfig(cfg *config.Config) (*Planner, error) {
	loader := dataset.New(cfg.Dataset)
	if err := loader.Load(); err != nil {
		return nil, err
	}
	return New(loader, limitsFromConfig(cfg.Search)), nil
}

// Loader exposes the underlying dataset for read-side collaborators.
func (p *Planner) Loader() *dataset.Loader {
	return p.loader
}

// FindRoutes returns up to the configured number of scored paths between
// two stations, cheapest first. An unknown station or an empty name yields
// no routes. When the pattern-aware search finds nothing, simple fallback
// paths are returned with estimated costs.
func (p *Planner) FindRoutes(from string, to string, maxChanges int) []ScoredRoute {
	if from == "" || to == "" {
		log.Warn().Msg("Missing origin or destination station")
		return nil
	}
	if maxChanges <= 0 {
		maxChanges = p.limits.MaxChanges
	}

	origin := dataset.ParseStationName(from)
	destination := dataset.ParseStationName(to)

	if p.loader.Station(origin) == nil {
		log.Warn().Str("station", from).Msg("Origin station not found")
		return nil
	}
	if p.loader.Station(destination) == nil {
		log.Warn().Str("station", to).Msg("Destination station not found")
		return nil
	}

	routes := p.findServicePatternRoutes(origin, destination, p.limits.MaxRoutes, maxChanges)
	if len(routes) > 0 {
		return routes
	}

	var fallback []ScoredRoute
	for _, path := range p.simpleRoutes(origin, destination) {
		fallback = append(fallback, ScoredRoute{
			Path: path,
			Cost: float64(len(path)-1) * float64(railway.PlaceholderHopMinutes),
		})
	}
	return fallback
}

// CalculateRoute produces the best full route between two stations under
// the given preferences. It degrades rather than fails: when no usable path
// exists it returns a minimal two-station route. Identical endpoints return
// nil. The returned route is a deep copy the caller may mutate freely.
func (p *Planner) CalculateRoute(from string, to string, prefs Preferences) *railway.Route {
	if from == "" || to == "" {
		log.Warn().Msg("Missing origin or destination station")
		return nil
	}

	origin := dataset.ParseStationName(from)
	destination := dataset.ParseStationName(to)
	if origin == destination {
		return nil
	}

	log.Info().Str("from", origin).Str("to", destination).Msg("Calculating route")

	maxChanges := prefs.MaxChanges
	if maxChanges <= 0 {
		maxChanges = p.limits.MaxChanges
	}

	best := p.bestRoute(origin, destination, maxChanges, prefs)
	if best == nil {
		best = p.minimalRoute([]string{origin, destination}, prefs.AvoidWalking)
	}

	var result railway.Route
	if err := copier.CopyWithOption(&result, best, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy route result")
		return best
	}
	return &result
}

// bestRoute assembles full routes for each candidate path and picks the one
// with the lowest preference weight. Invalid routes (walking hops under
// avoid_walking) lose to any valid route.
func (p *Planner) bestRoute(origin string, destination string, maxChanges int, prefs Preferences) *railway.Route {
	scored := p.FindRoutes(origin, destination, maxChanges)
	if len(scored) == 0 {
		return nil
	}

	minChanges := p.estimateMinChanges(origin, destination)

	var best *railway.Route
	bestWeight := 0.0
	for _, candidate := range scored {
		route := p.assembleRoute(candidate.Path, prefs.AvoidWalking)
		if route == nil {
			continue
		}
		if route.ChangesRequired < minChanges {
			log.Debug().Str("from", origin).Str("to", destination).
				Int("changes", route.ChangesRequired).Int("expected", minChanges).
				Msg("Route has fewer changes than the network suggests, keeping anyway")
		}

		weight := RouteWeight(RouteSummary{
			TotalMinutes:    route.TotalJourneyTimeMinutes,
			TotalDistanceKM: route.TotalDistanceKM,
			Changes:         route.ChangesRequired,
		}, prefs.Optimize)

		betterValidity := best != nil && !best.Valid && route.Valid
		worseValidity := best != nil && best.Valid && !route.Valid
		if best == nil || betterValidity || (!worseValidity && weight < bestWeight) {
			best = route
			bestWeight = weight
		}
	}
	return best
}

// assembleRoute turns a station path into a full route: segments,
// classified interchange points, totals and walking validity.
func (p *Planner) assembleRoute(path []string, avoidWalking bool) *railway.Route {
	if len(path) < 2 {
		return nil
	}

	segments := p.BuildSegments(path)
	if len(segments) == 0 {
		return p.minimalRoute(path, avoidWalking)
	}

	route := &railway.Route{
		FromStation: path[0],
		ToStation:   path[len(path)-1],
		FullPath:    path,
		Segments:    segments,
		Valid:       true,
	}

	walking := p.loader.WalkingConnections()
	for i := 0; i < len(path)-1; i++ {
		if _, isWalking := walking[railway.StationPair{From: path[i], To: path[i+1]}]; isWalking && avoidWalking {
			route.Valid = false
			break
		}
	}

	for _, segment := range segments {
		route.TotalDistanceKM += segment.EstimatedDistanceKM()
		route.TotalJourneyTimeMinutes += segment.EstimatedJourneyTimeMinutes()
	}

	route.InterchangePoints = p.classifier.IdentifyInterchanges(segments)
	for _, point := range route.InterchangePoints {
		if point.IsUserJourneyChange {
			route.ChangesRequired++
		}
	}

	return route
}

// SuggestViaStations returns up to limit intermediate stations seen across
// the best few low-change routes, alphabetically.
func (p *Planner) SuggestViaStations(from string, to string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}

	origin := dataset.ParseStationName(from)
	destination := dataset.ParseStationName(to)

	var paths [][]string
	for _, route := range p.findServicePatternRoutes(origin, destination, 3, 2) {
		paths = append(paths, route.Path)
	}

	stations := sortedIntermediates(paths)
	if len(stations) > limit {
		stations = stations[:limit]
	}
	return stations
}

// IdentifyTrainChanges lists the stations on a raw path where the traveller
// has to change trains, derived purely from line membership.
func (p *Planner) IdentifyTrainChanges(path []string) []string {
	if len(path) < 3 {
		return nil
	}

	var changes []string
	currentLine := ""

	for i := 0; i < len(path)-1; i++ {
		currentLines := p.loader.LinesForStation(dataset.ParseStationName(path[i]))
		nextLines := p.loader.LinesForStation(dataset.ParseStationName(path[i+1]))

		common := commonLines(currentLines, nextLines)
		if len(common) == 0 {
			if i > 0 {
				changes = append(changes, path[i])
			}
			continue
		}

		if currentLine != "" && !slices.Contains(common, currentLine) && i > 0 {
			changes = append(changes, path[i])
		}

		if slices.Contains(common, currentLine) {
			continue
		}
		currentLine = common[0]
	}

	return changes
}

// SearchStations delegates to the loader's ranked station search.
func (p *Planner) SearchStations(query string, limit int) []string {
	return p.loader.SearchStations(query, limit)
}

// Stats delegates to the loader's dataset statistics.
func (p *Planner) Stats() railway.DatabaseStats {
	return p.loader.Stats()
}

// IdentifyInterchanges classifies the boundaries of pre-built segments.
func (p *Planner) IdentifyInterchanges(segments []*railway.RouteSegment) []*railway.InterchangePoint {
	return p.classifier.IdentifyInterchanges(segments)
}

func commonLines(a []string, b []string) []string {
	var common []string
	for _, line := range a {
		if slices.Contains(b, line) {
			common = append(common, line)
		}
	}
	return common
}
