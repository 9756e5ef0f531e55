package railway

// Line is a physical rail route with an ordered station sequence. Several
// lines may share stations; those shared stations are the network's
// interchanges.
type Line struct {
	Name     string `groups:"basic" json:"name"`
	File     string `groups:"detailed" json:"file"`
	Operator string `groups:"basic" json:"operator"`

	TerminusStations []string `groups:"detailed" json:"terminus_stations"`
	MajorStations    []string `groups:"detailed" json:"major_stations"`

	Stations []*Station `groups:"detailed" json:"stations"`

	ServicePatterns *ServicePatternSet `groups:"detailed" json:"service_patterns,omitempty"`

	// TypicalJourneyTimes maps "From-To" station name pairs to minutes.
	TypicalJourneyTimes map[string]int `groups:"detailed" json:"typical_journey_times,omitempty"`
}

// StationNames returns the ordered station names along the line.
func (l *Line) StationNames() []string {
	names := make([]string, len(l.Stations))
	for i, station := range l.Stations {
		names[i] = station.Name
	}
	return names
}

// ServesStation reports whether the line calls at the named station.
func (l *Line) ServesStation(name string) bool {
	for _, station := range l.Stations {
		if station.Name == name {
			return true
		}
	}
	return false
}

// DirectPath returns the ordered slice of station names between from and to
// along this line, reversed when to precedes from. Returns nil when either
// station is not on the line.
func (l *Line) DirectPath(from string, to string) []string {
	names := l.StationNames()

	fromIndex := -1
	toIndex := -1
	for i, name := range names {
		if name == from {
			fromIndex = i
		}
		if name == to {
			toIndex = i
		}
	}
	if fromIndex == -1 || toIndex == -1 || fromIndex == toIndex {
		return nil
	}

	if fromIndex < toIndex {
		path := make([]string, toIndex-fromIndex+1)
		copy(path, names[fromIndex:toIndex+1])
		return path
	}

	path := make([]string, 0, fromIndex-toIndex+1)
	for i := fromIndex; i >= toIndex; i-- {
		path = append(path, names[i])
	}
	return path
}

// JourneyTime looks up an explicit journey time in minutes between two
// stations, trying the forward key then the reverse key.
func (l *Line) JourneyTime(from string, to string) (int, bool) {
	if l.TypicalJourneyTimes == nil {
		return 0, false
	}
	if minutes, ok := l.TypicalJourneyTimes[from+"-"+to]; ok {
		return minutes, true
	}
	if minutes, ok := l.TypicalJourneyTimes[to+"-"+from]; ok {
		return minutes, true
	}
	return 0, false
}
