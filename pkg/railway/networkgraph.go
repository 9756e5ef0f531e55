package railway

// NetworkGraph is the weighted adjacency structure the pathfinder searches.
// It is rebuilt wholesale from the loaded lines and never mutated in place.
type NetworkGraph struct {
	Nodes map[string]*NetworkNode
}

type NetworkNode struct {
	Station     *Station
	Coordinates *Coordinates

	// Lines serving this station, in line load order.
	Lines []string

	InterchangeLines   []string
	IsMajorInterchange bool

	Connections []NetworkEdge
}

// NetworkEdge is a single directed connection. Edges are always inserted in
// both directions with identical weights.
type NetworkEdge struct {
	To                 string
	DistanceKM         float64
	JourneyTimeMinutes int
	LineName           string
	PatternCode        string
	PatternPriority    int
}

// Node returns the node for a station name, or nil.
func (g *NetworkGraph) Node(name string) *NetworkNode {
	if g == nil {
		return nil
	}
	return g.Nodes[name]
}
