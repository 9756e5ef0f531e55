package dataset

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/railplan/railplan/pkg/railway"
)

// serviceNameVariations maps line file stem substrings to the alternative
// names services on that file run under. The dataset's line names and the
// names passengers (and interchange records) use do not always agree.
var serviceNameVariations = map[string][]string{
	"south_western":           {"South Western Railway", "South Western Main Line"},
	"cross_country":           {"CrossCountry", "Cross Country", "Cross Country Line"},
	"reading_to_basingstoke":  {"Reading to Basingstoke Line"},
	"great_western_main_line": {"Great Western Railway", "Great Western Main Line"},
}

// StationCoordinates returns the station name → coordinates mapping, built
// lazily from the loaded lines.
func (l *Loader) StationCoordinates() map[string]*railway.Coordinates {
	return l.coordinates.get(func() map[string]*railway.Coordinates {
		log.Debug().Msg("Building station coordinates mapping")

		coordinates := map[string]*railway.Coordinates{}

		l.mutex.RLock()
		defer l.mutex.RUnlock()

		for _, station := range l.stations {
			if station.Coordinates.Valid() {
				coordinates[station.Name] = station.Coordinates
			}
		}
		return coordinates
	})
}

// LineToFileMapping returns the mapping of line names (and operator names and
// known service-name variations) to dataset file stems.
func (l *Loader) LineToFileMapping() map[string]string {
	return l.lineToFile.get(func() map[string]string {
		log.Debug().Msg("Building line-to-file mapping")

		mapping := map[string]string{}

		l.mutex.RLock()
		defer l.mutex.RUnlock()

		for _, lineName := range l.lineOrder {
			line := l.lines[lineName]
			stem := fileStem(line.File)

			if line.Name != "" {
				mapping[line.Name] = stem
			}
			if line.Operator != "" {
				mapping[line.Operator] = stem
			}

			for pattern, variations := range serviceNameVariations {
				if strings.Contains(stem, pattern) {
					for _, variation := range variations {
						mapping[variation] = stem
					}
				}
			}
		}
		return mapping
	})
}

// StationToFilesMapping returns the mapping of station names to the dataset
// file stems they appear in.
func (l *Loader) StationToFilesMapping() map[string][]string {
	return l.stationToFiles.get(func() map[string][]string {
		log.Debug().Msg("Building station-to-files mapping")

		mapping := map[string][]string{}

		l.mutex.RLock()
		defer l.mutex.RUnlock()

		for _, lineName := range l.lineOrder {
			line := l.lines[lineName]
			stem := fileStem(line.File)
			for _, station := range line.Stations {
				mapping[station.Name] = append(mapping[station.Name], stem)
			}
		}
		return mapping
	})
}

// LineInterchanges returns the station → interchange connection records
// mapping from the interchange-connections dataset. A missing or malformed
// file degrades to an empty mapping.
func (l *Loader) LineInterchanges() map[string][]railway.InterchangeConnection {
	return l.lineInterchanges.get(func() map[string][]railway.InterchangeConnection {
		log.Debug().Msg("Loading line interchanges")

		document, ok := l.readInterchangeDocument()
		if !ok {
			return map[string][]railway.InterchangeConnection{}
		}

		interchanges := map[string][]railway.InterchangeConnection{}
		for _, record := range document.LineInterchanges {
			if record.Station == "" {
				continue
			}
			for _, connection := range record.Connections {
				interchanges[record.Station] = append(interchanges[record.Station], connection.toConnection())
			}
		}

		log.Debug().Int("stations", len(interchanges)).Msg("Loaded line interchanges")
		return interchanges
	})
}

// WalkingConnections returns the symmetric station pair → walking connection
// mapping from the interchange-connections dataset.
func (l *Loader) WalkingConnections() map[railway.StationPair]railway.WalkingConnection {
	return l.walkingConnections.get(func() map[railway.StationPair]railway.WalkingConnection {
		log.Debug().Msg("Loading walking connections")

		document, ok := l.readInterchangeDocument()
		if !ok {
			return map[railway.StationPair]railway.WalkingConnection{}
		}

		connections := map[railway.StationPair]railway.WalkingConnection{}
		for _, record := range document.Connections {
			if record.ConnectionType != "WALKING" || record.FromStation == "" || record.ToStation == "" {
				continue
			}

			distanceKM := record.WalkingDistanceM / 1000.0
			if record.WalkingDistanceM == 0 {
				distanceKM = 1.0
			}
			timeMinutes := record.TimeMinutes
			if timeMinutes == 0 {
				timeMinutes = 10
			}

			connection := railway.WalkingConnection{
				FromStation: record.FromStation,
				ToStation:   record.ToStation,
				DistanceKM:  distanceKM,
				TimeMinutes: timeMinutes,
			}

			connections[railway.StationPair{From: record.FromStation, To: record.ToStation}] = connection
			connections[railway.StationPair{From: record.ToStation, To: record.FromStation}] = connection
		}

		log.Debug().Int("connections", len(connections)).Msg("Loaded walking connections")
		return connections
	})
}

// WalkingTimeAt returns the explicit interchange walking time recorded for a
// station, if any connection entry mentions it.
func (l *Loader) WalkingTimeAt(stationName string) (int, bool) {
	document, ok := l.readInterchangeDocument()
	if !ok {
		return 0, false
	}

	for _, record := range document.Connections {
		if stationName == record.FromStation || stationName == record.ToStation {
			return record.TimeMinutes, true
		}
	}
	return 0, false
}

func (l *Loader) readInterchangeDocument() (*interchangeDocument, bool) {
	path := filepath.Join(l.config.DataDirectory, interchangeConnectionsFile)

	var document interchangeDocument
	if err := readJSONFile(path, &document); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Interchange connections unavailable")
		return nil, false
	}
	return &document, true
}
