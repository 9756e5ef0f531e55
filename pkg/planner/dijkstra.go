package planner

import (
	"container/heap"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// changePenalty is the flat cost added when an edge's line differs from the
// line the search arrived on, modelling the changeover.
const changePenalty = 15.0

// ScoredRoute is one completed path with its accumulated search cost.
type ScoredRoute struct {
	Path []string
	Cost float64
}

// searchState is one entry in the priority queue.
type searchState struct {
	cost    float64
	station string
	path    []string
	changes int
	line    string
	pattern string
}

// stateKey dedups visited states. Changes and pattern are part of the key: a
// cheaper path using more changes or a different pattern is not dominated by
// a path that reached the same station another way.
type stateKey struct {
	station string
	changes int
	pattern string
}

// stateQueue orders states by cost with an explicit deterministic tie-break:
// fewer changes, then shorter path, then lexically smaller station name.
type stateQueue []*searchState

func (q stateQueue) Len() int { return len(q) }

func (q stateQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	if q[i].changes != q[j].changes {
		return q[i].changes < q[j].changes
	}
	if len(q[i].path) != len(q[j].path) {
		return len(q[i].path) < len(q[j].path)
	}
	return q[i].station < q[j].station
}

func (q stateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *stateQueue) Push(x any) { *q = append(*q, x.(*searchState)) }

func (q *stateQueue) Pop() any {
	old := *q
	last := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return last
}

// findServicePatternRoutes runs the bounded multi-criteria search. Up to
// maxRoutes completed paths accumulate; the loop stops on an empty queue,
// the route quota, the iteration cap or the wall-clock budget. Cap and
// budget exits are degraded results, not failures.
func (p *Planner) findServicePatternRoutes(start string, end string, maxRoutes int, maxChanges int) []ScoredRoute {
	started := time.Now()

	graph := p.Graph()
	startNode := graph.Node(start)
	endNode := graph.Node(end)
	if startNode == nil || endNode == nil {
		return nil
	}

	// Direct-route shortcut: stations sharing a line never need the full
	// search.
	for _, line := range startNode.Lines {
		if slices.Contains(endNode.Lines, line) {
			if direct := p.directRouteOnLine(start, end, line); direct != nil {
				return []ScoredRoute{{Path: direct, Cost: 1.0}}
			}
		}
	}

	queue := &stateQueue{{cost: 0, station: start, path: []string{start}}}
	heap.Init(queue)

	visited := map[stateKey]float64{}
	var routes []ScoredRoute
	iterations := 0

	for queue.Len() > 0 && len(routes) < maxRoutes && iterations < p.limits.MaxIterations {
		iterations++

		if time.Since(started) > p.limits.Timeout {
			log.Warn().Dur("timeout", p.limits.Timeout).Msg("Route search hit wall-clock budget, returning partial results")
			break
		}

		state := heap.Pop(queue).(*searchState)

		key := stateKey{station: state.station, changes: state.changes, pattern: state.pattern}
		if previous, seen := visited[key]; seen && previous <= state.cost {
			continue
		}
		visited[key] = state.cost

		if state.station == end {
			routes = append(routes, ScoredRoute{Path: state.path, Cost: state.cost})
			continue
		}

		if state.changes >= maxChanges {
			continue
		}
		if len(state.path) > p.limits.MaxPathLength {
			continue
		}

		for _, edge := range graph.Node(state.station).Connections {
			if slices.Contains(state.path, edge.To) {
				continue
			}

			patternBonus := float64(4-edge.PatternPriority) * 2
			connectionCost := float64(edge.JourneyTimeMinutes) + edge.DistanceKM*0.1 - patternBonus

			isChange := state.line != "" && state.line != edge.LineName
			if isChange {
				connectionCost += changePenalty
			}

			nextPath := make([]string, len(state.path), len(state.path)+1)
			copy(nextPath, state.path)
			nextPath = append(nextPath, edge.To)

			nextChanges := state.changes
			if isChange {
				nextChanges++
			}

			heap.Push(queue, &searchState{
				cost:    state.cost + connectionCost,
				station: edge.To,
				path:    nextPath,
				changes: nextChanges,
				line:    edge.LineName,
				pattern: edge.PatternCode,
			})
		}
	}

	if iterations >= p.limits.MaxIterations {
		log.Warn().Int("iterations", iterations).Msg("Route search hit iteration cap, returning partial results")
	}

	return routes
}

// directRouteOnLine returns the contiguous station slice between two stations
// on the named line, or nil.
func (p *Planner) directRouteOnLine(start string, end string, lineName string) []string {
	line := p.loader.Line(lineName)
	if line == nil {
		return nil
	}

	path := line.DirectPath(start, end)
	if len(path) < 2 {
		return nil
	}
	return path
}
