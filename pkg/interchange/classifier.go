package interchange

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/railplan/railplan/pkg/railway"
)

// Data is the slice of the dataset the classifier needs. *dataset.Loader
// implements it; tests supply fakes.
type Data interface {
	LineInterchanges() map[string][]railway.InterchangeConnection
	LineToFileMapping() map[string]string
	StationToFilesMapping() map[string][]string
	StationCoordinates() map[string]*railway.Coordinates
	WalkingTimeAt(stationName string) (int, bool)
	IsUndergroundStation(stationName string) bool
}

// Walking estimates longer than this are surfaced as walking connections
// rather than platform-to-platform train changes.
const walkingConnectionThresholdMinutes = 10

const defaultWalkingTimeMinutes = 5

// sameLinePairs lists line names that are operationally the same physical
// service under two labels.
var sameLinePairs = [][2]string{
	{"South Western Main Line", "South Western Railway"},
	{"Great Western Main Line", "Great Western Railway"},
	{"Cross Country Line", "Cross Country"},
}

// Classifier decides, for each line boundary on a route, whether the
// passenger actually has to change trains. Pure classification over loaded
// data; no side effects beyond logging.
type Classifier struct {
	data Data
}

func New(data Data) *Classifier {
	return &Classifier{data: data}
}

// IdentifyInterchanges inspects each adjacent segment pair and returns an
// InterchangePoint for every genuine boundary. Boundaries that fail
// geographic validation are dropped entirely.
func (c *Classifier) IdentifyInterchanges(segments []*railway.RouteSegment) []*railway.InterchangePoint {
	if len(segments) < 2 {
		return nil
	}

	var points []*railway.InterchangePoint

	for i := 0; i < len(segments)-1; i++ {
		current := segments[i]
		next := segments[i+1]

		station := current.ToStation
		fromLine := current.LineName
		toLine := next.LineName

		if station == "" || fromLine == "" || toLine == "" {
			log.Warn().Int("segment", i).Msg("Segment boundary missing station or line names")
			continue
		}

		if fromLine == toLine || station != next.FromStation {
			continue
		}

		if point := c.analyze(station, fromLine, toLine, current, next); point != nil {
			points = append(points, point)
		}
	}

	log.Debug().Int("interchanges", len(points)).Msg("Classified route boundaries")
	return points
}

func (c *Classifier) analyze(station string, fromLine string, toLine string, current *railway.RouteSegment, next *railway.RouteSegment) *railway.InterchangePoint {
	if c.isKnownThroughService(fromLine, toLine, station) {
		log.Debug().Str("station", station).Str("from", fromLine).Str("to", toLine).Msg("Known through service")
		return c.throughServicePoint(station, fromLine, toLine, "Through service - same train continues")
	}

	if !c.isMeaningfulJourneyChange(station, fromLine, toLine, current, next) {
		log.Debug().Str("station", station).Str("from", fromLine).Str("to", toLine).Msg("Line designation change only")
		return c.throughServicePoint(station, fromLine, toLine, "Same train continues with different line designation")
	}

	if c.isSamePhysicalLine(fromLine, toLine) {
		return c.throughServicePoint(station, fromLine, toLine, "Lines are operationally the same, no change required")
	}

	if !c.isGeographicallyValid(station, fromLine, toLine) {
		log.Debug().Str("station", station).Str("from", fromLine).Str("to", toLine).Msg("Discarding geographically invalid interchange")
		return nil
	}

	walkingTime := c.walkingTime(station, fromLine, toLine)

	pointType := railway.InterchangeTypeTrainChange
	if walkingTime > walkingConnectionThresholdMinutes {
		pointType = railway.InterchangeTypeWalkingConnection
	}

	return &railway.InterchangePoint{
		StationName:         station,
		FromLine:            fromLine,
		ToLine:              toLine,
		Type:                pointType,
		WalkingTimeMinutes:  walkingTime,
		IsUserJourneyChange: true,
		Coordinates:         c.data.StationCoordinates()[station],
		Description:         "Change from " + fromLine + " to " + toLine,
	}
}

func (c *Classifier) throughServicePoint(station string, fromLine string, toLine string, description string) *railway.InterchangePoint {
	return &railway.InterchangePoint{
		StationName:         station,
		FromLine:            fromLine,
		ToLine:              toLine,
		Type:                railway.InterchangeTypeThroughService,
		WalkingTimeMinutes:  0,
		IsUserJourneyChange: false,
		Description:         description,
	}
}

// isKnownThroughService checks the interchange records for this station for a
// requires_change=false entry covering the pair, in either direction.
func (c *Classifier) isKnownThroughService(line1 string, line2 string, station string) bool {
	for _, connection := range c.data.LineInterchanges()[station] {
		if !connection.RequiresChange && connection.Matches(line1, line2) {
			return true
		}
	}
	return false
}

// isMeaningfulJourneyChange is the three-step AND gate: the boundary is only
// a real change when the lines live in different dataset files, no
// continuous-service record links them anywhere, and the segments are not
// the same physical train.
func (c *Classifier) isMeaningfulJourneyChange(station string, fromLine string, toLine string, current *railway.RouteSegment, next *railway.RouteSegment) bool {
	if !c.isDifferentDatasetFile(fromLine, toLine) {
		log.Debug().Str("station", station).Msg("Same network, not a passenger change")
		return false
	}

	if c.isContinuousService(fromLine, toLine) {
		log.Debug().Str("station", station).Msg("Continuous train service")
		return false
	}

	if c.isSameTrainForJourney(station, fromLine, toLine, current, next) {
		log.Debug().Str("station", station).Msg("Same physical train for this journey")
		return false
	}

	return true
}

// isDifferentDatasetFile reports whether the two lines map to different
// dataset files. Unresolvable lines are treated as different.
func (c *Classifier) isDifferentDatasetFile(line1 string, line2 string) bool {
	lineToFile := c.data.LineToFileMapping()
	file1 := lineToFile[line1]
	file2 := lineToFile[line2]

	if file1 == "" || file2 == "" {
		return true
	}
	return file1 != file2
}

// isContinuousService scans every station's interchange records for a
// requires_change=false pair matching these lines, not just this station's.
func (c *Classifier) isContinuousService(fromLine string, toLine string) bool {
	for _, connections := range c.data.LineInterchanges() {
		for _, connection := range connections {
			if !connection.RequiresChange && connection.Matches(fromLine, toLine) {
				return true
			}
		}
	}
	return false
}

// isSameTrainForJourney checks whether the two segments are the same physical
// train: matching train service IDs, matching service patterns or matching
// train IDs, falling back to the per-station through-service records.
func (c *Classifier) isSameTrainForJourney(station string, fromLine string, toLine string, current *railway.RouteSegment, next *railway.RouteSegment) bool {
	if current.TrainServiceID != "" && next.TrainServiceID != "" {
		return current.TrainServiceID == next.TrainServiceID
	}

	if current.ServicePattern != "" && current.ServicePattern == next.ServicePattern {
		return true
	}

	if current.TrainID != "" && current.TrainID == next.TrainID {
		return true
	}

	return c.isKnownThroughService(fromLine, toLine, station)
}

func (c *Classifier) isSamePhysicalLine(line1 string, line2 string) bool {
	if line1 == line2 {
		return true
	}

	if !c.isDifferentDatasetFile(line1, line2) {
		return true
	}

	if c.isContinuousService(line1, line2) {
		return true
	}

	for _, pair := range sameLinePairs {
		if (line1 == pair[0] || line1 == pair[1]) && (line2 == pair[0] || line2 == pair[1]) {
			return true
		}
	}
	return false
}

// isGeographicallyValid confirms the station actually appears in both lines'
// dataset files. When coordinates or file mappings are missing the boundary
// cannot be validated and is conservatively allowed.
func (c *Classifier) isGeographicallyValid(station string, fromLine string, toLine string) bool {
	if _, ok := c.data.StationCoordinates()[station]; !ok {
		log.Debug().Str("station", station).Msg("No coordinates, cannot validate interchange")
		return true
	}

	lineToFile := c.data.LineToFileMapping()
	file1 := lineToFile[fromLine]
	file2 := lineToFile[toLine]
	if file1 == "" || file2 == "" {
		log.Debug().Str("from", fromLine).Str("to", toLine).Msg("Unresolvable line files, cannot validate interchange")
		return true
	}

	stationFiles := c.data.StationToFilesMapping()[station]

	foundFirst := false
	foundSecond := false
	for _, file := range stationFiles {
		if file == file1 {
			foundFirst = true
		}
		if file == file2 {
			foundSecond = true
		}
	}
	return foundFirst && foundSecond
}

// walkingTime estimates how long the passenger walk at an interchange takes:
// an explicit dataset entry wins, otherwise a line-type heuristic.
func (c *Classifier) walkingTime(station string, fromLine string, toLine string) int {
	if minutes, ok := c.data.WalkingTimeAt(station); ok {
		return minutes
	}

	switch {
	case strings.Contains(fromLine, "Underground") || strings.Contains(toLine, "Underground"):
		return 3
	case c.data.IsUndergroundStation(station):
		// Stations on a loaded metro system get the short-walk figure even
		// when neither line carries an Underground label.
		return 3
	case strings.Contains(fromLine, "Express") || strings.Contains(toLine, "Express"):
		return 8
	default:
		return defaultWalkingTimeMinutes
	}
}
