package planner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railplan/railplan/pkg/config"
	"github.com/railplan/railplan/pkg/dataset"
	"github.com/railplan/railplan/pkg/railway"
)

const testIndexJSON = `{
  "lines": [
    {"name": "Western Branch", "file": "western_branch.json", "operator": "Western Trains"},
    {"name": "Eastern Branch", "file": "eastern_branch.json", "operator": "Eastern Trains"},
    {"name": "South Link", "file": "south_link.json", "operator": "Eastern Trains"},
    {"name": "Island Branch", "file": "island_branch.json", "operator": "Island Trains"}
  ]
}`

const testWesternJSON = `{
  "metadata": {"line_name": "Western Branch", "operator": "Western Trains"},
  "stations": [
    {"name": "Oakford", "coordinates": {"lat": 51.30, "lng": -0.80}},
    {"name": "Milbury", "coordinates": {"lat": 51.32, "lng": -0.70}},
    {"name": "Centralton", "coordinates": {"lat": 51.35, "lng": -0.60}}
  ],
  "service_patterns": {
    "stopping": {"name": "Stopping", "service_type": "stopping", "stations": "all"},
    "express": {"name": "Express", "service_type": "express", "stations": ["Oakford", "Centralton"]}
  },
  "typical_journey_times": {
    "Oakford-Milbury": 6,
    "Milbury-Centralton": 7,
    "Oakford-Centralton": 10
  }
}`

const testEasternJSON = `{
  "metadata": {"line_name": "Eastern Branch", "operator": "Eastern Trains"},
  "stations": [
    {"name": "Centralton", "coordinates": {"lat": 51.35, "lng": -0.60}},
    {"name": "Dunmere", "coordinates": {"lat": 51.37, "lng": -0.50}},
    {"name": "Easthaven", "coordinates": {"lat": 51.40, "lng": -0.40}}
  ],
  "typical_journey_times": {
    "Centralton-Dunmere": 8,
    "Dunmere-Easthaven": 9
  }
}`

const testSouthLinkJSON = `{
  "metadata": {"line_name": "South Link", "operator": "Eastern Trains"},
  "stations": [
    {"name": "Easthaven", "coordinates": {"lat": 51.40, "lng": -0.40}},
    {"name": "Glebe", "coordinates": {"lat": 51.43, "lng": -0.35}},
    {"name": "Harrow End", "coordinates": {"lat": 51.46, "lng": -0.30}}
  ]
}`

const testIslandJSON = `{
  "metadata": {"line_name": "Island Branch", "operator": "Island Trains"},
  "stations": [
    {"name": "Farpoint", "coordinates": {"lat": 50.70, "lng": -1.30}},
    {"name": "Outmarsh", "coordinates": {"lat": 50.72, "lng": -1.25}}
  ]
}`

const testInterchangeJSON = `{
  "connections": [
    {
      "from_station": "Northgate",
      "to_station": "Northgate East",
      "connection_type": "WALKING",
      "walking_distance_m": 450,
      "time_minutes": 6
    }
  ],
  "line_interchanges": []
}`

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()

	directory := t.TempDir()
	linesDirectory := filepath.Join(directory, "lines")
	require.NoError(t, os.Mkdir(linesDirectory, 0755))

	files := map[string]string{
		filepath.Join(directory, "railway_lines_index.json"):          testIndexJSON,
		filepath.Join(directory, "interchange_connections.json"):      testInterchangeJSON,
		filepath.Join(linesDirectory, "western_branch.json"):          testWesternJSON,
		filepath.Join(linesDirectory, "eastern_branch.json"):          testEasternJSON,
		filepath.Join(linesDirectory, "south_link.json"):              testSouthLinkJSON,
		filepath.Join(linesDirectory, "island_branch.json"):           testIslandJSON,
	}
	for path, contents := range files {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}

	loader := dataset.New(config.DatasetConfig{DataDirectory: directory})
	require.NoError(t, loader.Load())

	return New(loader, SearchLimits{})
}

func TestFindRoutesDirectShortcut(t *testing.T) {
	planner := newTestPlanner(t)

	routes := planner.FindRoutes("Oakford", "Centralton", 3)

	require.Len(t, routes, 1)
	assert.Equal(t, 1.0, routes[0].Cost)
	assert.Equal(t, []string{"Oakford", "Milbury", "Centralton"}, routes[0].Path)
}

func TestFindRoutesPrefersExpressPattern(t *testing.T) {
	planner := newTestPlanner(t)

	routes := planner.FindRoutes("Oakford", "Easthaven", 3)

	// The express pattern skips Milbury, making the shorter path cheaper.
	require.NotEmpty(t, routes)
	assert.Equal(t, []string{"Oakford", "Centralton", "Dunmere", "Easthaven"}, routes[0].Path)
}

func TestFindRoutesAcrossPlainLines(t *testing.T) {
	planner := newTestPlanner(t)

	routes := planner.FindRoutes("Centralton", "Harrow End", 3)

	// Two lines without patterns produce the full station-by-station path
	// with a single change at the shared station.
	require.NotEmpty(t, routes)
	assert.Equal(t, []string{"Centralton", "Dunmere", "Easthaven", "Glebe", "Harrow End"}, routes[0].Path)
}

func TestFindRoutesUnknownStation(t *testing.T) {
	planner := newTestPlanner(t)

	assert.Nil(t, planner.FindRoutes("Oakford", "Nowhere", 3))
	assert.Nil(t, planner.FindRoutes("", "Easthaven", 3))
}

func TestFindRoutesDeterministic(t *testing.T) {
	planner := newTestPlanner(t)

	first := planner.FindRoutes("Oakford", "Easthaven", 3)
	second := planner.FindRoutes("Oakford", "Easthaven", 3)

	assert.Equal(t, first, second)
}

func TestFindRoutesRespectsMaxChanges(t *testing.T) {
	planner := newTestPlanner(t)

	// Reaching Easthaven needs one change at Centralton; the search stops
	// expanding a state once its change count hits the limit, so the
	// change itself needs headroom.
	assert.Empty(t, planner.FindRoutes("Oakford", "Easthaven", 1))

	constrained := planner.FindRoutes("Oakford", "Easthaven", 2)
	relaxed := planner.FindRoutes("Oakford", "Easthaven", 3)

	require.NotEmpty(t, constrained)
	assert.LessOrEqual(t, len(constrained), len(relaxed))
}

func TestSearchIterationCapDegrades(t *testing.T) {
	loader := newTestPlanner(t).Loader()
	planner := New(loader, SearchLimits{MaxIterations: 1})

	// One iteration only pops the start state, so the search ends with
	// whatever completed paths it has: none.
	assert.Empty(t, planner.findServicePatternRoutes("Oakford", "Easthaven", 5, 3))

	// The direct-route shortcut runs before the bounded loop and is not
	// subject to the cap.
	direct := planner.findServicePatternRoutes("Oakford", "Milbury", 5, 3)
	require.Len(t, direct, 1)
	assert.Equal(t, 1.0, direct[0].Cost)
}

func TestSearchTimeoutDegrades(t *testing.T) {
	loader := newTestPlanner(t).Loader()
	planner := New(loader, SearchLimits{Timeout: time.Nanosecond})

	assert.Empty(t, planner.findServicePatternRoutes("Oakford", "Easthaven", 5, 3))
}

func TestCalculateRouteAcrossLines(t *testing.T) {
	planner := newTestPlanner(t)

	route := planner.CalculateRoute("Oakford", "Easthaven", Preferences{})

	require.NotNil(t, route)
	assert.Equal(t, "Oakford", route.FromStation)
	assert.Equal(t, "Easthaven", route.ToStation)
	assert.Equal(t, 1, route.ChangesRequired)
	assert.True(t, route.Valid)
	assert.Positive(t, route.TotalJourneyTimeMinutes)
	assert.Positive(t, route.TotalDistanceKM)

	require.Len(t, route.InterchangePoints, 1)
	point := route.InterchangePoints[0]
	assert.Equal(t, "Centralton", point.StationName)
	assert.Equal(t, railway.InterchangeTypeTrainChange, point.Type)
	assert.True(t, point.IsUserJourneyChange)
}

func TestCalculateRouteSameStation(t *testing.T) {
	planner := newTestPlanner(t)

	assert.Nil(t, planner.CalculateRoute("Oakford", "Oakford", Preferences{}))
}

func TestCalculateRouteReturnsDeepCopy(t *testing.T) {
	planner := newTestPlanner(t)

	first := planner.CalculateRoute("Oakford", "Easthaven", Preferences{})
	require.NotNil(t, first)
	first.FullPath[0] = "Tampered"
	first.Segments[0].LineName = "Tampered"

	second := planner.CalculateRoute("Oakford", "Easthaven", Preferences{})
	require.NotNil(t, second)
	assert.Equal(t, "Oakford", second.FullPath[0])
	assert.NotEqual(t, "Tampered", second.Segments[0].LineName)
}

func TestCalculateRouteMinimalWhenDisconnected(t *testing.T) {
	planner := newTestPlanner(t)

	route := planner.CalculateRoute("Oakford", "Farpoint", Preferences{})

	require.NotNil(t, route)
	assert.Equal(t, []string{"Oakford", "Farpoint"}, route.FullPath)
	require.Len(t, route.Segments, 1)
	assert.Equal(t, "National Rail", route.Segments[0].LineName)
	assert.Equal(t, railway.PlaceholderHopMinutes, route.TotalJourneyTimeMinutes)
	assert.Equal(t, railway.PlaceholderHopKM, route.TotalDistanceKM)
	assert.Equal(t, 0, route.ChangesRequired)
}

func TestMinimalRouteWalkingInvalidatesWhenAvoided(t *testing.T) {
	planner := newTestPlanner(t)

	route := planner.minimalRoute([]string{"Northgate", "Northgate East"}, true)

	require.Len(t, route.Segments, 1)
	assert.True(t, route.Segments[0].IsWalking)
	assert.Equal(t, railway.WalkingLineName, route.Segments[0].LineName)
	assert.Equal(t, 6, route.Segments[0].JourneyTimeMinutes)
	assert.InDelta(t, 0.45, route.Segments[0].DistanceKM, 1e-9)
	assert.False(t, route.Valid)

	allowed := planner.minimalRoute([]string{"Northgate", "Northgate East"}, false)
	assert.True(t, allowed.Valid)
}

func TestSuggestViaStations(t *testing.T) {
	planner := newTestPlanner(t)

	stations := planner.SuggestViaStations("Oakford", "Easthaven", 10)

	assert.Contains(t, stations, "Centralton")
	assert.IsIncreasing(t, stations)
}

func TestIdentifyTrainChanges(t *testing.T) {
	planner := newTestPlanner(t)

	changes := planner.IdentifyTrainChanges([]string{"Oakford", "Milbury", "Centralton", "Dunmere", "Easthaven"})

	assert.Equal(t, []string{"Centralton"}, changes)
}

func TestIdentifyTrainChangesShortPath(t *testing.T) {
	planner := newTestPlanner(t)

	assert.Nil(t, planner.IdentifyTrainChanges([]string{"Oakford", "Milbury"}))
}

func TestEstimateMinChanges(t *testing.T) {
	planner := newTestPlanner(t)

	assert.Equal(t, 0, planner.estimateMinChanges("Oakford", "Centralton"))
	assert.Equal(t, 2, planner.estimateMinChanges("Oakford", "Easthaven"))
}

func TestSimpleRoutesDirect(t *testing.T) {
	planner := newTestPlanner(t)

	routes := planner.simpleRoutes("Oakford", "Centralton")

	require.Len(t, routes, 1)
	assert.Equal(t, []string{"Oakford", "Milbury", "Centralton"}, routes[0])
}
