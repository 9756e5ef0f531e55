package planner

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/railplan/railplan/pkg/railway"
)

const unknownLineName = "Unknown Line"

// BuildSegments splits a station path into line-tagged segments. A segment
// grows while the current line still serves each station; when it no longer
// does, the segment closes at the previous station and a new one opens
// there, on a line the boundary pair shares when one exists.
func (p *Planner) BuildSegments(path []string) []*railway.RouteSegment {
	if len(path) < 2 {
		return nil
	}

	var segments []*railway.RouteSegment
	segmentStart := 0
	currentLine := ""

	for i, station := range path {
		stationLines := p.loader.LinesForStation(station)

		if i == 0 {
			currentLine = firstOrUnknown(stationLines)
			continue
		}

		if slices.Contains(stationLines, currentLine) {
			continue
		}

		if segmentEnd := i - 1; segmentEnd > segmentStart {
			segments = append(segments, p.newSegment(path[segmentStart], path[segmentEnd], currentLine, segmentEnd-segmentStart))
		}

		segmentStart = i - 1
		previousLines := p.loader.LinesForStation(path[i-1])
		if common := firstCommonLine(previousLines, stationLines); common != "" {
			currentLine = common
		} else {
			currentLine = firstOrUnknown(stationLines)
		}
	}

	if segmentStart < len(path)-1 {
		segments = append(segments, p.newSegment(path[segmentStart], path[len(path)-1], currentLine, len(path)-1-segmentStart))
	}

	return segments
}

func (p *Planner) newSegment(from string, to string, lineName string, stationCount int) *railway.RouteSegment {
	if lineName == "" {
		lineName = unknownLineName
	}

	servicePattern := ""
	if lineName == railway.WalkingLineName {
		servicePattern = railway.WalkingLineName
	}

	segment := &railway.RouteSegment{
		FromStation:    from,
		ToStation:      to,
		LineName:       lineName,
		StationCount:   stationCount,
		ServicePattern: servicePattern,
		TrainServiceID: trainServiceID(lineName, servicePattern, from, to),
		IsWalking:      lineName == railway.WalkingLineName,
	}

	if minutes, ok := p.loader.JourneyTime(from, to); ok {
		segment.JourneyTimeMinutes = minutes
	}

	return segment
}

// trainServiceID identifies the physical train service behind a segment, so
// that consecutive segments worked by the same train can be recognised even
// when the line name changes. Related lines collapse onto one service ID.
func trainServiceID(lineName string, servicePattern string, from string, to string) string {
	if lineName == railway.WalkingLineName {
		return fmt.Sprintf("WALKING_%s_%s", from, to)
	}

	switch {
	case lineName == "Reading to Basingstoke Line":
		return "GWR_READING_BASINGSTOKE_SERVICE"
	case strings.Contains(lineName, "South Western"):
		return "SWR_MAIN_LINE_SERVICE"
	case strings.Contains(lineName, "Portsmouth") && strings.Contains(lineName, "Direct"):
		// Portsmouth Direct trains continue as South Western Main Line trains.
		return "SWR_MAIN_LINE_SERVICE"
	case strings.Contains(lineName, "Great Western"), strings.Contains(lineName, "Reading"), strings.Contains(lineName, "GWR"):
		return "GWR_MAIN_LINE_SERVICE"
	case strings.Contains(lineName, "Cross Country"), strings.Contains(lineName, "CrossCountry"):
		return "CROSS_COUNTRY_SERVICE"
	}

	lineKey := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(lineName))
	if servicePattern != "" {
		return fmt.Sprintf("%s_SERVICE_%s", lineKey, servicePattern)
	}
	return fmt.Sprintf("%s_SERVICE", lineKey)
}

// minimalRoute synthesises a route directly from a path when segment
// construction has nothing better to offer, using placeholder figures for
// rail hops and the walking dataset's figures for walking hops. The route
// is marked invalid when walking was to be avoided but a hop is a walk.
func (p *Planner) minimalRoute(path []string, avoidWalking bool) *railway.Route {
	walking := p.loader.WalkingConnections()

	route := &railway.Route{
		FromStation:     path[0],
		ToStation:       path[len(path)-1],
		FullPath:        path,
		ChangesRequired: max(0, len(path)-2),
		Valid:           true,
	}

	for i := 0; i < len(path)-1; i++ {
		from := path[i]
		to := path[i+1]

		connection, isWalking := walking[railway.StationPair{From: from, To: to}]
		if isWalking && avoidWalking {
			route.Valid = false
		}

		distanceKM := railway.PlaceholderHopKM
		minutes := railway.PlaceholderHopMinutes
		lineName := "National Rail"
		if isWalking {
			distanceKM = connection.DistanceKM
			minutes = connection.TimeMinutes
			lineName = railway.WalkingLineName
		}

		route.Segments = append(route.Segments, &railway.RouteSegment{
			FromStation:        from,
			ToStation:          to,
			LineName:           lineName,
			StationCount:       1,
			TrainServiceID:     fmt.Sprintf("MINIMAL_%s_%s_%s", lineName, from, to),
			IsWalking:          isWalking,
			DistanceKM:         distanceKM,
			JourneyTimeMinutes: minutes,
		})

		route.TotalDistanceKM += distanceKM
		route.TotalJourneyTimeMinutes += minutes
	}

	return route
}

func firstOrUnknown(lines []string) string {
	if len(lines) == 0 {
		return unknownLineName
	}
	return lines[0]
}

func firstCommonLine(a []string, b []string) string {
	for _, line := range a {
		if slices.Contains(b, line) {
			return line
		}
	}
	return ""
}

