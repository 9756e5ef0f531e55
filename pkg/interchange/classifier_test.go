package interchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railplan/railplan/pkg/railway"
)

type fakeData struct {
	lineInterchanges map[string][]railway.InterchangeConnection
	lineToFile       map[string]string
	stationToFiles   map[string][]string
	coordinates      map[string]*railway.Coordinates
	walkingTimes     map[string]int
	underground      map[string]bool
}

func (f *fakeData) LineInterchanges() map[string][]railway.InterchangeConnection {
	return f.lineInterchanges
}

func (f *fakeData) LineToFileMapping() map[string]string {
	return f.lineToFile
}

func (f *fakeData) StationToFilesMapping() map[string][]string {
	return f.stationToFiles
}

func (f *fakeData) StationCoordinates() map[string]*railway.Coordinates {
	return f.coordinates
}

func (f *fakeData) WalkingTimeAt(stationName string) (int, bool) {
	minutes, ok := f.walkingTimes[stationName]
	return minutes, ok
}

func (f *fakeData) IsUndergroundStation(stationName string) bool {
	return f.underground[stationName]
}

func newFakeData() *fakeData {
	return &fakeData{
		lineInterchanges: map[string][]railway.InterchangeConnection{},
		lineToFile: map[string]string{
			"Alpha Line": "alpha",
			"Beta Line":  "beta",
		},
		stationToFiles: map[string][]string{
			"Central": {"alpha", "beta"},
		},
		coordinates: map[string]*railway.Coordinates{
			"Central": {Latitude: 51.5, Longitude: -0.1},
		},
		walkingTimes: map[string]int{},
		underground:  map[string]bool{},
	}
}

func segmentPair(fromLine string, toLine string) []*railway.RouteSegment {
	return []*railway.RouteSegment{
		{FromStation: "Start", ToStation: "Central", LineName: fromLine, TrainServiceID: "SVC_A", StationCount: 2},
		{FromStation: "Central", ToStation: "End", LineName: toLine, TrainServiceID: "SVC_B", StationCount: 2},
	}
}

func TestIdentifyInterchangesTrainChange(t *testing.T) {
	classifier := New(newFakeData())

	points := classifier.IdentifyInterchanges(segmentPair("Alpha Line", "Beta Line"))

	require.Len(t, points, 1)
	point := points[0]
	assert.Equal(t, "Central", point.StationName)
	assert.Equal(t, railway.InterchangeTypeTrainChange, point.Type)
	assert.True(t, point.IsUserJourneyChange)
	assert.Equal(t, 5, point.WalkingTimeMinutes)
	require.NotNil(t, point.Coordinates)
}

func TestIdentifyInterchangesKnownThroughService(t *testing.T) {
	data := newFakeData()
	data.lineInterchanges["Central"] = []railway.InterchangeConnection{
		{FromLine: "Beta Line", ToLine: "Alpha Line", RequiresChange: false},
	}
	classifier := New(data)

	points := classifier.IdentifyInterchanges(segmentPair("Alpha Line", "Beta Line"))

	require.Len(t, points, 1)
	assert.Equal(t, railway.InterchangeTypeThroughService, points[0].Type)
	assert.False(t, points[0].IsUserJourneyChange)
}

func TestIdentifyInterchangesSameFileIsThroughService(t *testing.T) {
	data := newFakeData()
	data.lineToFile["Beta Line"] = "alpha"
	classifier := New(data)

	points := classifier.IdentifyInterchanges(segmentPair("Alpha Line", "Beta Line"))

	require.Len(t, points, 1)
	assert.Equal(t, railway.InterchangeTypeThroughService, points[0].Type)
}

func TestIdentifyInterchangesSameTrainServiceID(t *testing.T) {
	classifier := New(newFakeData())

	segments := segmentPair("Alpha Line", "Beta Line")
	segments[1].TrainServiceID = segments[0].TrainServiceID

	points := classifier.IdentifyInterchanges(segments)

	require.Len(t, points, 1)
	assert.Equal(t, railway.InterchangeTypeThroughService, points[0].Type)
	assert.False(t, points[0].IsUserJourneyChange)
}

func TestIdentifyInterchangesSamePhysicalLinePair(t *testing.T) {
	data := newFakeData()
	data.lineToFile["South Western Main Line"] = "swml"
	data.lineToFile["South Western Railway"] = "swr"
	data.stationToFiles["Central"] = []string{"swml", "swr"}
	classifier := New(data)

	points := classifier.IdentifyInterchanges(segmentPair("South Western Main Line", "South Western Railway"))

	require.Len(t, points, 1)
	assert.Equal(t, railway.InterchangeTypeThroughService, points[0].Type)
}

func TestIdentifyInterchangesGeographicallyInvalidDropped(t *testing.T) {
	data := newFakeData()
	// Central is known but only appears in the alpha file.
	data.stationToFiles["Central"] = []string{"alpha"}
	classifier := New(data)

	points := classifier.IdentifyInterchanges(segmentPair("Alpha Line", "Beta Line"))

	assert.Empty(t, points)
}

func TestIdentifyInterchangesUnknownCoordinatesAllowed(t *testing.T) {
	data := newFakeData()
	delete(data.coordinates, "Central")
	data.stationToFiles["Central"] = []string{"alpha"}
	classifier := New(data)

	// Without coordinates the boundary cannot be validated, so it stands.
	points := classifier.IdentifyInterchanges(segmentPair("Alpha Line", "Beta Line"))

	require.Len(t, points, 1)
	assert.True(t, points[0].IsUserJourneyChange)
}

func TestIdentifyInterchangesWalkingConnection(t *testing.T) {
	data := newFakeData()
	data.walkingTimes["Central"] = 12
	classifier := New(data)

	points := classifier.IdentifyInterchanges(segmentPair("Alpha Line", "Beta Line"))

	require.Len(t, points, 1)
	assert.Equal(t, railway.InterchangeTypeWalkingConnection, points[0].Type)
	assert.Equal(t, 12, points[0].WalkingTimeMinutes)
}

func TestWalkingTimeHeuristics(t *testing.T) {
	classifier := New(newFakeData())

	assert.Equal(t, 3, classifier.walkingTime("Central", "London Underground", "Beta Line"))
	assert.Equal(t, 8, classifier.walkingTime("Central", "Gatwick Express", "Beta Line"))
	assert.Equal(t, 5, classifier.walkingTime("Central", "Alpha Line", "Beta Line"))
}

func TestWalkingTimeUndergroundStation(t *testing.T) {
	data := newFakeData()
	data.underground["Central"] = true
	classifier := New(data)

	// A station on a loaded metro system is treated like an Underground
	// boundary regardless of line names, but explicit dataset entries and
	// Underground line labels still win.
	assert.Equal(t, 3, classifier.walkingTime("Central", "Alpha Line", "Beta Line"))
	assert.Equal(t, 3, classifier.walkingTime("Central", "London Underground", "Beta Line"))

	data.walkingTimes["Central"] = 7
	assert.Equal(t, 7, classifier.walkingTime("Central", "Alpha Line", "Beta Line"))
}

func TestIdentifyInterchangesIgnoresNonBoundaries(t *testing.T) {
	classifier := New(newFakeData())

	segments := []*railway.RouteSegment{
		{FromStation: "Start", ToStation: "Central", LineName: "Alpha Line"},
		{FromStation: "Elsewhere", ToStation: "End", LineName: "Beta Line"},
	}

	// The segments do not join up, so there is no boundary to classify.
	assert.Empty(t, classifier.IdentifyInterchanges(segments))

	assert.Nil(t, classifier.IdentifyInterchanges(nil))
	assert.Nil(t, classifier.IdentifyInterchanges(segments[:1]))
}
