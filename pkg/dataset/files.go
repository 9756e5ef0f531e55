package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulcager/osgridref"
	"github.com/rs/zerolog/log"

	"github.com/railplan/railplan/pkg/railway"
)

type indexDocument struct {
	Lines []indexLineEntry `json:"lines"`
}

type indexLineEntry struct {
	Name             string   `json:"name"`
	File             string   `json:"file"`
	Operator         string   `json:"operator"`
	TerminusStations []string `json:"terminus_stations"`
	MajorStations    []string `json:"major_stations"`
}

type lineDocument struct {
	Metadata struct {
		LineName string `json:"line_name"`
		Operator string `json:"operator"`
	} `json:"metadata"`

	Stations []stationRecord `json:"stations"`

	ServicePatterns     map[string]*railway.ServicePattern `json:"service_patterns"`
	TypicalJourneyTimes map[string]int                     `json:"typical_journey_times"`
}

type stationRecord struct {
	Name          string               `json:"name"`
	Coordinates   *railway.Coordinates `json:"coordinates"`
	GridReference *gridReference       `json:"grid_reference"`
	Zone          int                  `json:"zone"`
	Interchange   []string             `json:"interchange"`
}

// gridReference is the UK OS easting/northing form some line files carry
// instead of lat/lng.
type gridReference struct {
	Easting  string `json:"easting"`
	Northing string `json:"northing"`
}

type interchangeDocument struct {
	Connections      []connectionRecord      `json:"connections"`
	LineInterchanges []lineInterchangeRecord `json:"line_interchanges"`
}

type connectionRecord struct {
	FromStation      string               `json:"from_station"`
	ToStation        string               `json:"to_station"`
	ConnectionType   string               `json:"connection_type"`
	WalkingDistanceM float64              `json:"walking_distance_m"`
	TimeMinutes      int                  `json:"time_minutes"`
	Coordinates      *railway.Coordinates `json:"coordinates"`
}

type lineInterchangeRecord struct {
	Station     string                     `json:"station"`
	Connections []rawInterchangeConnection `json:"connections"`
}

// rawInterchangeConnection keeps requires_change as a pointer so an omitted
// field defaults to true (a change is assumed unless the data says otherwise).
type rawInterchangeConnection struct {
	FromLine       string `json:"from_line"`
	ToLine         string `json:"to_line"`
	RequiresChange *bool  `json:"requires_change"`
}

func (r rawInterchangeConnection) toConnection() railway.InterchangeConnection {
	requiresChange := true
	if r.RequiresChange != nil {
		requiresChange = *r.RequiresChange
	}

	return railway.InterchangeConnection{
		FromLine:       r.FromLine,
		ToLine:         r.ToLine,
		RequiresChange: requiresChange,
	}
}

func readJSONFile(path string, target any) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(contents, target); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// resolveCoordinates returns usable coordinates for a station record,
// converting an OS grid reference when no lat/lng is present.
func resolveCoordinates(record stationRecord) *railway.Coordinates {
	if record.Coordinates.Valid() {
		return record.Coordinates
	}

	if record.GridReference == nil || record.GridReference.Easting == "" || record.GridReference.Northing == "" {
		return record.Coordinates
	}

	gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", record.GridReference.Easting, record.GridReference.Northing))
	if err != nil {
		log.Warn().Err(err).Str("station", record.Name).Msg("Failed to parse OS grid reference")
		return record.Coordinates
	}

	lat, lon := gridRef.ToLatLon()
	return &railway.Coordinates{Latitude: lat, Longitude: lon}
}

// fileStem strips the extension from a dataset file name, matching how the
// interchange metadata refers to line files.
func fileStem(fileName string) string {
	return strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
}
