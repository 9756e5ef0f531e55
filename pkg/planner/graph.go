package planner

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/railplan/railplan/pkg/geo"
	"github.com/railplan/railplan/pkg/railway"
)

// legacyPatternCode tags synthetic adjacent-station edges on lines without
// service pattern data.
const legacyPatternCode = "legacy"

// Graph returns the service-aware network graph, building it on first use.
// The graph is rebuilt only after RefreshGraph (or a dataset reload followed
// by RefreshGraph).
func (p *Planner) Graph() *railway.NetworkGraph {
	if graph := p.graph.Load(); graph != nil {
		return graph
	}

	p.graphMutex.Lock()
	defer p.graphMutex.Unlock()

	if graph := p.graph.Load(); graph != nil {
		return graph
	}

	graph := p.buildGraph()
	p.graph.Store(graph)
	return graph
}

// RefreshGraph drops the cached graph so the next search rebuilds it from
// the loader's current state.
func (p *Planner) RefreshGraph() {
	p.graph.Store(nil)
}

// buildGraph produces the weighted adjacency structure: one node per
// station, and for every line either per-service-pattern consecutive edges
// or plain adjacent-station edges when the line has no pattern data. All
// edges are inserted in both directions with identical weights.
func (p *Planner) buildGraph() *railway.NetworkGraph {
	graph := &railway.NetworkGraph{Nodes: map[string]*railway.NetworkNode{}}

	for _, name := range p.loader.StationNames() {
		station := p.loader.Station(name)
		graph.Nodes[name] = &railway.NetworkNode{
			Station:            station,
			Coordinates:        station.Coordinates,
			Lines:              p.loader.LinesForStation(name),
			InterchangeLines:   station.InterchangeLines,
			IsMajorInterchange: station.MajorInterchange(),
		}
	}

	for _, line := range p.loader.Lines() {
		if line.ServicePatterns == nil {
			p.addLegacyConnections(graph, line)
			continue
		}

		allStations := line.StationNames()
		patternCodes := make([]string, 0, len(line.ServicePatterns.Patterns))
		for patternCode := range line.ServicePatterns.Patterns {
			patternCodes = append(patternCodes, patternCode)
		}
		slices.Sort(patternCodes)

		for _, patternCode := range patternCodes {
			pattern := line.ServicePatterns.Patterns[patternCode]
			patternStations := pattern.StationsOn(allStations)
			priority := pattern.ServiceType.Priority()

			for i := 0; i < len(patternStations)-1; i++ {
				currentName := patternStations[i]
				nextName := patternStations[i+1]

				current := p.loader.Station(currentName)
				next := p.loader.Station(nextName)
				if current == nil || next == nil {
					continue
				}

				distance := edgeDistance(current, next)
				journeyTime, ok := p.loader.JourneyTime(currentName, nextName)
				if !ok {
					journeyTime = estimateJourneyTime(distance, pattern.ServiceType.SpeedMultiplier())
				}

				addBidirectionalEdge(graph, currentName, nextName, railway.NetworkEdge{
					DistanceKM:         distance,
					JourneyTimeMinutes: journeyTime,
					LineName:           line.Name,
					PatternCode:        patternCode,
					PatternPriority:    priority,
				})
			}
		}
	}

	log.Debug().Int("stations", len(graph.Nodes)).Msg("Built service-aware network graph")
	return graph
}

// addLegacyConnections connects adjacent stations on a line that carries no
// service pattern data.
func (p *Planner) addLegacyConnections(graph *railway.NetworkGraph, line *railway.Line) {
	for i := 0; i < len(line.Stations)-1; i++ {
		current := line.Stations[i]
		next := line.Stations[i+1]

		distance := edgeDistance(current, next)
		journeyTime, ok := p.loader.JourneyTime(current.Name, next.Name)
		if !ok {
			journeyTime = estimateJourneyTime(distance, 1.0)
		}

		addBidirectionalEdge(graph, current.Name, next.Name, railway.NetworkEdge{
			DistanceKM:         distance,
			JourneyTimeMinutes: journeyTime,
			LineName:           line.Name,
			PatternCode:        legacyPatternCode,
			PatternPriority:    railway.LegacyPatternPriority,
		})
	}
}

func addBidirectionalEdge(graph *railway.NetworkGraph, from string, to string, edge railway.NetworkEdge) {
	fromNode := graph.Nodes[from]
	toNode := graph.Nodes[to]
	if fromNode == nil || toNode == nil {
		return
	}

	forward := edge
	forward.To = to
	fromNode.Connections = append(fromNode.Connections, forward)

	backward := edge
	backward.To = from
	toNode.Connections = append(toNode.Connections, backward)
}

// edgeDistance measures the hop between two stations, treating unknown
// coordinates as zero distance rather than unroutable: stations adjacent on
// a line are connected regardless of whether we know where they are.
func edgeDistance(a *railway.Station, b *railway.Station) float64 {
	distance := geo.DistanceKM(a.Coordinates, b.Coordinates)
	if math.IsInf(distance, 1) {
		return 0
	}
	return distance
}

// estimateJourneyTime derives minutes from distance and the pattern's speed
// class when the dataset has no explicit journey time, floored at 2 minutes.
func estimateJourneyTime(distanceKM float64, speedMultiplier float64) int {
	estimated := int(distanceKM * 1.5 * speedMultiplier)
	if estimated < 2 {
		return 2
	}
	return estimated
}
