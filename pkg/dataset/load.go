package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/railplan/railplan/pkg/railway"
)

// Load reads the index file and every line file it references, replacing the
// loaded station and line maps wholesale. A missing or malformed index is a
// load failure; a missing or malformed individual line file is skipped with
// a warning so a partial dataset still loads.
func (l *Loader) Load() error {
	log.Info().Str("directory", l.config.DataDirectory).Msg("Loading railway station dataset")

	indexPath := filepath.Join(l.config.DataDirectory, indexFile)

	var index indexDocument
	if err := readJSONFile(indexPath, &index); err != nil {
		log.Error().Err(err).Str("path", indexPath).Msg("Failed to read railway lines index")
		return fmt.Errorf("railway lines index: %w", err)
	}

	log.Info().Int("lines", len(index.Lines)).Msg("Loading railway lines")

	type parsedLine struct {
		entry    indexLineEntry
		document *lineDocument
	}

	// Line files are independent, parse them in parallel and merge in index
	// order so reloads are deterministic.
	parsePool := pool.NewWithResults[parsedLine]().WithMaxGoroutines(8)
	for _, entry := range index.Lines {
		entry := entry
		parsePool.Go(func() parsedLine {
			linePath := filepath.Join(l.config.LinesDirectory, entry.File)

			if _, err := os.Stat(linePath); err != nil {
				log.Warn().Str("path", linePath).Str("line", entry.Name).Msg("Railway line file not found, skipping")
				return parsedLine{entry: entry}
			}

			var document lineDocument
			if err := readJSONFile(linePath, &document); err != nil {
				log.Warn().Err(err).Str("line", entry.Name).Msg("Failed to parse railway line file, skipping")
				return parsedLine{entry: entry}
			}

			return parsedLine{entry: entry, document: &document}
		})
	}
	parsed := parsePool.Wait()

	byName := map[string]*lineDocument{}
	for _, result := range parsed {
		if result.document != nil {
			byName[result.entry.Name] = result.document
		}
	}

	lines := map[string]*railway.Line{}
	lineOrder := []string{}
	stations := map[string]*railway.Station{}

	for _, entry := range index.Lines {
		document := byName[entry.Name]
		if document == nil {
			continue
		}

		line := &railway.Line{
			Name:                entry.Name,
			File:                entry.File,
			Operator:            entry.Operator,
			TerminusStations:    entry.TerminusStations,
			MajorStations:       entry.MajorStations,
			TypicalJourneyTimes: document.TypicalJourneyTimes,
		}

		for _, record := range document.Stations {
			if record.Name == "" {
				log.Warn().Str("line", entry.Name).Msg("Skipping station record with no name")
				continue
			}

			station := &railway.Station{
				Name:             record.Name,
				Coordinates:      resolveCoordinates(record),
				Zone:             record.Zone,
				InterchangeLines: record.Interchange,
			}

			line.Stations = append(line.Stations, station)
			stations[station.Name] = station
		}

		if len(document.ServicePatterns) > 0 {
			line.ServicePatterns = &railway.ServicePatternSet{
				LineName:       entry.Name,
				Patterns:       document.ServicePatterns,
				DefaultPattern: "fast",
			}
		}

		lines[entry.Name] = line
		lineOrder = append(lineOrder, entry.Name)
	}

	undergroundSystems := l.loadUndergroundSystems()

	l.mutex.Lock()
	l.lines = lines
	l.lineOrder = lineOrder
	l.stations = stations
	l.undergroundSystems = undergroundSystems
	l.loaded = true
	l.mutex.Unlock()

	// Everything derived from the previous load is stale now.
	l.ClearCache()

	log.Info().
		Int("lines", len(lines)).
		Int("stations", len(stations)).
		Msg("Dataset loading complete")

	if err := l.checkKeyStations(); err != nil {
		return err
	}

	return nil
}

// checkKeyStations verifies the configured sentinel stations are present.
// A miss is a warning unless the configuration requires key stations.
func (l *Loader) checkKeyStations() error {
	var missing []string
	for _, name := range l.config.KeyStations {
		if l.Station(name) == nil {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		log.Debug().Msg("All key stations loaded")
		return nil
	}

	if l.config.RequireKeyStations {
		l.mutex.Lock()
		l.loaded = false
		l.mutex.Unlock()
		return fmt.Errorf("missing key stations: %v", missing)
	}

	log.Warn().Strs("stations", missing).Msg("Missing key stations")
	return nil
}

func (l *Loader) loadUndergroundSystems() map[string]UndergroundSystem {
	path := filepath.Join(l.config.DataDirectory, undergroundSystemsFile)

	if _, err := os.Stat(path); err != nil {
		// Optional file.
		return map[string]UndergroundSystem{}
	}

	systems := map[string]UndergroundSystem{}
	if err := readJSONFile(path, &systems); err != nil {
		log.Warn().Err(err).Msg("Failed to parse underground systems file")
		return map[string]UndergroundSystem{}
	}

	log.Debug().Int("systems", len(systems)).Msg("Loaded underground systems")
	return systems
}
