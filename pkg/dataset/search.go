package dataset

import (
	"sort"
	"strings"
)

// lineContextIndicators mark parenthesised suffixes that are disambiguation
// context rather than part of the station name, e.g. "Fleet (South Western
// Main Line)" but not "Farnborough (Main)".
var lineContextIndicators = []string{
	"Line",
	"Railway",
	"Network",
	"Express",
	"Main Line",
	"Coast",
}

// ParseStationName strips disambiguation line context from a station name.
func ParseStationName(stationName string) string {
	if stationName == "" {
		return ""
	}

	if index := strings.Index(stationName, " ("); index != -1 {
		rest := stationName[index+2:]
		if closing := strings.Index(rest, ")"); closing != -1 {
			parenContent := rest[:closing]
			for _, indicator := range lineContextIndicators {
				if strings.Contains(parenContent, indicator) {
					return strings.TrimSpace(stationName[:index])
				}
			}
		}
	}

	return strings.TrimSpace(stationName)
}

// SearchStations returns up to limit display names matching the query,
// ranked exact match first, then prefix matches, then substring matches,
// alphabetical within each rank. Stations served by more than one line get
// their primary line appended as disambiguation context.
func (l *Loader) SearchStations(query string, limit int) []string {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}

	var matches []string
	for _, stationName := range l.StationNames() {
		if !strings.Contains(strings.ToLower(stationName), queryLower) {
			continue
		}
		matches = append(matches, l.displayName(stationName))
	}

	sort.Slice(matches, func(i, j int) bool {
		rankI, keyI := searchRank(matches[i], queryLower)
		rankJ, keyJ := searchRank(matches[j], queryLower)
		if rankI != rankJ {
			return rankI < rankJ
		}
		return keyI < keyJ
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func searchRank(displayName string, queryLower string) (int, string) {
	nameLower := strings.ToLower(displayName)
	if index := strings.Index(nameLower, " ("); index != -1 {
		nameLower = nameLower[:index]
	}

	switch {
	case nameLower == queryLower:
		return 0, strings.ToLower(displayName)
	case hasWordPrefix(nameLower, queryLower):
		return 1, strings.ToLower(displayName)
	default:
		return 2, strings.ToLower(displayName)
	}
}

// hasWordPrefix reports whether the name or any word in it starts with the
// query, so "water" prefix-matches "London Waterloo" but only
// substring-matches "Bridgwater".
func hasWordPrefix(nameLower string, queryLower string) bool {
	for _, word := range strings.Fields(nameLower) {
		if strings.HasPrefix(word, queryLower) {
			return true
		}
	}
	return false
}

// AllStationsWithContext returns every station display name, sorted, with
// disambiguation context where a station is served by multiple lines.
func (l *Loader) AllStationsWithContext() []string {
	var names []string
	for _, stationName := range l.StationNames() {
		names = append(names, l.displayName(stationName))
	}
	sort.Strings(names)
	return names
}

func (l *Loader) displayName(stationName string) string {
	lines := l.LinesForStation(stationName)
	if len(lines) > 1 {
		return stationName + " (" + lines[0] + ")"
	}
	return stationName
}
