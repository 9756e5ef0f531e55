package planner

import (
	"sort"
	"strings"
)

// majorHubs are the interchange stations tried as via points when the
// graph search finds nothing. Ordered roughly by connectivity.
var majorHubs = []string{
	"London Waterloo",
	"Victoria",
	"London Bridge",
	"Paddington",
	"King's Cross",
	"Euston",
	"Liverpool Street",
	"Clapham Junction",
	"Birmingham New Street",
	"Manchester Piccadilly",
}

// hubCities mark station names whose routes typically need a single change
// through a city-centre hub.
var hubCities = []string{
	"London", "Birmingham", "Manchester", "Edinburgh", "Glasgow", "Leeds", "Bristol",
}

// simpleDirectRoute returns the station path along a line both stations
// share, or nil when no single line serves both.
func (p *Planner) simpleDirectRoute(origin, destination string) []string {
	destinationSet := make(map[string]bool)
	for _, name := range p.loader.LinesForStation(destination) {
		destinationSet[name] = true
	}

	for _, name := range p.loader.LinesForStation(origin) {
		if !destinationSet[name] {
			continue
		}
		line := p.loader.Line(name)
		if line == nil {
			continue
		}
		if path := line.DirectPath(origin, destination); path != nil {
			return path
		}
	}

	return nil
}

// simpleRoutes produces fallback paths when the pattern-aware search comes
// up empty: the direct path if one exists, otherwise up to three
// hub-mediated paths where a major interchange connects both legs.
func (p *Planner) simpleRoutes(origin, destination string) [][]string {
	if direct := p.simpleDirectRoute(origin, destination); direct != nil {
		return [][]string{direct}
	}

	var routes [][]string
	for _, hub := range majorHubs {
		if hub == origin || hub == destination {
			continue
		}
		firstLeg := p.simpleDirectRoute(origin, hub)
		if firstLeg == nil {
			continue
		}
		secondLeg := p.simpleDirectRoute(hub, destination)
		if secondLeg == nil {
			continue
		}

		// The hub appears at the end of the first leg and the start of
		// the second; drop the duplicate.
		path := make([]string, 0, len(firstLeg)+len(secondLeg)-1)
		path = append(path, firstLeg...)
		path = append(path, secondLeg[1:]...)
		routes = append(routes, path)

		if len(routes) >= 3 {
			break
		}
	}

	return routes
}

// estimateMinChanges guesses the minimum number of changes between two
// stations without running a search. Used for quick feasibility hints.
func (p *Planner) estimateMinChanges(origin, destination string) int {
	originLines := p.loader.LinesForStation(origin)
	destinationLines := p.loader.LinesForStation(destination)

	originSet := make(map[string]bool, len(originLines))
	for _, name := range originLines {
		originSet[name] = true
	}
	for _, name := range destinationLines {
		if originSet[name] {
			return 0
		}
	}

	// A hub-city endpoint paired with a non-hub one typically needs a
	// single change through the city.
	if isHubCityStation(origin) != isHubCityStation(destination) {
		return 1
	}

	originStation := p.loader.Station(origin)
	destinationStation := p.loader.Station(destination)
	if originStation != nil && originStation.MajorInterchange() &&
		destinationStation != nil && destinationStation.MajorInterchange() {
		return 1
	}

	return 2
}

func isHubCityStation(name string) bool {
	for _, city := range hubCities {
		if strings.Contains(name, city) {
			return true
		}
	}
	return false
}

// sortedIntermediates returns the deduplicated intermediate stations of a
// set of paths in alphabetical order.
func sortedIntermediates(paths [][]string) []string {
	seen := map[string]bool{}
	var stations []string
	for _, path := range paths {
		if len(path) <= 2 {
			continue
		}
		for _, station := range path[1 : len(path)-1] {
			if !seen[station] {
				seen[station] = true
				stations = append(stations, station)
			}
		}
	}
	sort.Strings(stations)
	return stations
}
