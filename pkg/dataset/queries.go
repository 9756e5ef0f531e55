package dataset

import (
	"github.com/railplan/railplan/pkg/railway"
)

// Station returns the station for a (possibly disambiguated) name, or nil.
func (l *Loader) Station(name string) *railway.Station {
	parsed := ParseStationName(name)

	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.stations[parsed]
}

// Line returns the line with the given name, or nil.
func (l *Loader) Line(name string) *railway.Line {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.lines[name]
}

// Lines returns all loaded lines in index order.
func (l *Loader) Lines() []*railway.Line {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	lines := make([]*railway.Line, 0, len(l.lineOrder))
	for _, name := range l.lineOrder {
		lines = append(lines, l.lines[name])
	}
	return lines
}

// StationNames returns every loaded station name, unordered.
func (l *Loader) StationNames() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	names := make([]string, 0, len(l.stations))
	for name := range l.stations {
		names = append(names, name)
	}
	return names
}

// LinesForStation returns the names of every line calling at the station, in
// index order.
func (l *Loader) LinesForStation(stationName string) []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var serving []string
	for _, lineName := range l.lineOrder {
		if l.lines[lineName].ServesStation(stationName) {
			serving = append(serving, lineName)
		}
	}
	return serving
}

// JourneyTime scans every line's typical journey time table for an explicit
// entry between the two stations, forward key first then reversed. Callers
// fall back to distance-based estimation when none exists.
func (l *Loader) JourneyTime(from string, to string) (int, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, lineName := range l.lineOrder {
		if minutes, ok := l.lines[lineName].JourneyTime(from, to); ok {
			return minutes, true
		}
	}
	return 0, false
}

// OperatorForSegment returns the operator of a line serving both stations, or
// "" when they share no line.
func (l *Loader) OperatorForSegment(from string, to string) string {
	fromLines := l.LinesForStation(ParseStationName(from))
	toLines := l.LinesForStation(ParseStationName(to))

	for _, fromLine := range fromLines {
		for _, toLine := range toLines {
			if fromLine == toLine {
				if line := l.Line(fromLine); line != nil {
					return line.Operator
				}
			}
		}
	}
	return ""
}

// Stats summarises the loaded dataset.
func (l *Loader) Stats() railway.DatabaseStats {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	stats := railway.DatabaseStats{
		TotalStations: len(l.stations),
		TotalLines:    len(l.lines),
	}
	for _, line := range l.lines {
		if line.ServicePatterns != nil {
			stats.LinesWithPatterns++
		}
	}
	return stats
}

// UndergroundSystems returns the optional underground-systems dataset.
func (l *Loader) UndergroundSystems() map[string]UndergroundSystem {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.undergroundSystems
}

// IsUndergroundStation reports whether any loaded underground system serves
// the station.
func (l *Loader) IsUndergroundStation(name string) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, system := range l.undergroundSystems {
		for _, station := range system.Stations {
			if station == name {
				return true
			}
		}
	}
	return false
}
