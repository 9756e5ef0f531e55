package railway

import (
	"encoding/json"

	"golang.org/x/exp/slices"
)

// ServiceType classifies the calling behaviour of a service pattern. The
// priority feeds the pathfinder's pattern bonus and the speed multiplier is
// used to estimate journey times when the dataset carries no explicit value.
type ServiceType string

const (
	ServiceTypeExpress  ServiceType = "express"
	ServiceTypeFast     ServiceType = "fast"
	ServiceTypeSemiFast ServiceType = "semi_fast"
	ServiceTypeStopping ServiceType = "stopping"
	ServiceTypePeak     ServiceType = "peak"
	ServiceTypeOffPeak  ServiceType = "off_peak"
	ServiceTypeNight    ServiceType = "night"
)

// LegacyPatternPriority is the priority assigned to synthetic adjacent-station
// connections on lines without service pattern data.
const LegacyPatternPriority = 3

// Priority returns the search priority for the service type. Lower is better.
func (t ServiceType) Priority() int {
	switch t {
	case ServiceTypeExpress:
		return 1
	case ServiceTypeFast, ServiceTypePeak:
		return 2
	case ServiceTypeSemiFast, ServiceTypeOffPeak:
		return 3
	case ServiceTypeStopping, ServiceTypeNight:
		return 4
	default:
		return LegacyPatternPriority
	}
}

// SpeedMultiplier scales the distance-derived journey time estimate for edges
// without an explicit typical journey time.
func (t ServiceType) SpeedMultiplier() float64 {
	switch t {
	case ServiceTypeExpress:
		return 0.8
	case ServiceTypeFast, ServiceTypePeak:
		return 1.0
	case ServiceTypeOffPeak:
		return 1.1
	case ServiceTypeSemiFast:
		return 1.3
	case ServiceTypeNight:
		return 1.4
	case ServiceTypeStopping:
		return 1.5
	default:
		return 1.2
	}
}

// ServicePattern is a named calling scheme on a line. Stations is nil when
// the pattern serves every station on the line (recorded as "all" in the
// dataset), otherwise it is the explicit ordered subset served.
type ServicePattern struct {
	Name        string      `groups:"detailed" json:"name,omitempty"`
	ServiceType ServiceType `groups:"detailed" json:"service_type"`
	Stations    []string    `groups:"detailed" json:"stations,omitempty"`
	Description string      `groups:"detailed" json:"description,omitempty"`
}

func (p *ServicePattern) UnmarshalJSON(data []byte) error {
	type rawPattern struct {
		Name        string          `json:"name"`
		ServiceType ServiceType     `json:"service_type"`
		Stations    json.RawMessage `json:"stations"`
		Description string          `json:"description"`
	}

	var raw rawPattern
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = raw.Name
	p.ServiceType = raw.ServiceType
	p.Description = raw.Description
	p.Stations = nil

	// "stations" is either the literal string "all" or an explicit list.
	if len(raw.Stations) > 0 {
		var all string
		if err := json.Unmarshal(raw.Stations, &all); err == nil {
			return nil
		}
		return json.Unmarshal(raw.Stations, &p.Stations)
	}
	return nil
}

// ServesAll reports whether the pattern calls at every station on its line.
func (p *ServicePattern) ServesAll() bool {
	return len(p.Stations) == 0
}

// StationsOn resolves the pattern's served stations against the full ordered
// station list of its line.
func (p *ServicePattern) StationsOn(allStations []string) []string {
	if p.ServesAll() {
		return allStations
	}
	return p.Stations
}

// ServesBoth reports whether the pattern calls at both named stations.
func (p *ServicePattern) ServesBoth(from string, to string, allStations []string) bool {
	served := p.StationsOn(allStations)
	return slices.Contains(served, from) && slices.Contains(served, to)
}

// ServicePatternSet is the per-line collection of named calling patterns.
type ServicePatternSet struct {
	LineName       string                     `groups:"detailed" json:"line_name"`
	Patterns       map[string]*ServicePattern `groups:"detailed" json:"patterns"`
	DefaultPattern string                     `groups:"detailed" json:"default_pattern,omitempty"`
}

// Pattern returns the pattern registered under code, or nil.
func (s *ServicePatternSet) Pattern(code string) *ServicePattern {
	if s == nil {
		return nil
	}
	return s.Patterns[code]
}

// BestPatternForStations returns the highest-priority pattern serving both
// stations, preferring express over fast over semi-fast over stopping.
func (s *ServicePatternSet) BestPatternForStations(from string, to string, allStations []string) *ServicePattern {
	if s == nil {
		return nil
	}

	var best *ServicePattern
	for _, pattern := range s.Patterns {
		if !pattern.ServesBoth(from, to, allStations) {
			continue
		}
		if best == nil || pattern.ServiceType.Priority() < best.ServiceType.Priority() {
			best = pattern
		}
	}
	return best
}
