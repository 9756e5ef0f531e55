package railway

// Coordinates is a WGS84 position stored the way the dataset files store it.
type Coordinates struct {
	Latitude  float64 `groups:"basic" json:"lat"`
	Longitude float64 `groups:"basic" json:"lng"`
}

// Valid reports whether the coordinates carry a usable position. The datasets
// use the zero value to mean "unknown", never a real location.
func (c *Coordinates) Valid() bool {
	return c != nil && (c.Latitude != 0 || c.Longitude != 0)
}

type Station struct {
	Name        string       `groups:"basic" json:"name"`
	Coordinates *Coordinates `groups:"basic" json:"coordinates,omitempty"`
	Zone        int          `groups:"detailed" json:"zone,omitempty"`

	// InterchangeLines lists the lines this station is flagged as an
	// interchange for in its dataset record.
	InterchangeLines []string `groups:"detailed" json:"interchange,omitempty"`
}

// MajorInterchange reports whether the station is flagged as an interchange
// for two or more lines.
func (s *Station) MajorInterchange() bool {
	return len(s.InterchangeLines) >= 2
}

type DatabaseStats struct {
	TotalStations     int `groups:"basic" json:"total_stations"`
	TotalLines        int `groups:"basic" json:"total_lines"`
	LinesWithPatterns int `groups:"basic" json:"lines_with_patterns"`
}
