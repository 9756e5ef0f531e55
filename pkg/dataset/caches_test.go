package dataset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railplan/railplan/pkg/railway"
)

func TestStationCoordinates(t *testing.T) {
	loader := loadTestDataset(t)

	coordinates := loader.StationCoordinates()

	require.Contains(t, coordinates, "London Waterloo")
	assert.InDelta(t, 51.5031, coordinates["London Waterloo"].Latitude, 1e-6)
	assert.NotContains(t, coordinates, "Fleet")
}

func TestLineToFileMappingIncludesVariations(t *testing.T) {
	loader := loadTestDataset(t)

	mapping := loader.LineToFileMapping()

	assert.Equal(t, "south_western_main_line", mapping["South Western Main Line"])
	// Operator names and known service-name variations resolve too.
	assert.Equal(t, "south_western_main_line", mapping["South Western Railway"])
	assert.Equal(t, "reading_to_basingstoke", mapping["Reading to Basingstoke Line"])
	assert.Equal(t, "reading_to_basingstoke", mapping["Great Western Railway"])
}

func TestStationToFilesMapping(t *testing.T) {
	loader := loadTestDataset(t)

	mapping := loader.StationToFilesMapping()

	assert.ElementsMatch(t, []string{"south_western_main_line", "reading_to_basingstoke"}, mapping["Basingstoke"])
	assert.Equal(t, []string{"south_western_main_line"}, mapping["Woking"])
}

func TestLineInterchanges(t *testing.T) {
	loader := loadTestDataset(t)

	interchanges := loader.LineInterchanges()

	require.Len(t, interchanges["Basingstoke"], 1)
	// requires_change omitted in the data defaults to true.
	assert.True(t, interchanges["Basingstoke"][0].RequiresChange)

	require.Len(t, interchanges["Woking"], 1)
	assert.False(t, interchanges["Woking"][0].RequiresChange)
}

func TestWalkingConnectionsSymmetric(t *testing.T) {
	loader := loadTestDataset(t)

	connections := loader.WalkingConnections()

	forward, ok := connections[railway.StationPair{From: "Farnborough North", To: "Farnborough (Main)"}]
	require.True(t, ok)
	assert.Equal(t, 8, forward.TimeMinutes)
	assert.InDelta(t, 0.6, forward.DistanceKM, 1e-9)

	backward, ok := connections[railway.StationPair{From: "Farnborough (Main)", To: "Farnborough North"}]
	require.True(t, ok)
	assert.Equal(t, forward.TimeMinutes, backward.TimeMinutes)

	// The PLATFORM connection must not appear as a walking connection.
	_, ok = connections[railway.StationPair{From: "Clapham Junction", To: "Clapham Junction"}]
	assert.False(t, ok)
}

func TestWalkingConnectionsMissingFileDegradesToEmpty(t *testing.T) {
	datasetConfig := writeTestDataset(t)
	require.NoError(t, os.Remove(filepath.Join(datasetConfig.DataDirectory, interchangeConnectionsFile)))

	loader := New(datasetConfig)
	require.NoError(t, loader.Load())

	assert.Empty(t, loader.WalkingConnections())
	assert.Empty(t, loader.LineInterchanges())
}

func TestWalkingTimeAt(t *testing.T) {
	loader := loadTestDataset(t)

	minutes, ok := loader.WalkingTimeAt("Farnborough North")
	require.True(t, ok)
	assert.Equal(t, 8, minutes)

	_, ok = loader.WalkingTimeAt("Woking")
	assert.False(t, ok)
}

func TestClearCacheRecomputes(t *testing.T) {
	loader := loadTestDataset(t)

	first := loader.LineToFileMapping()
	loader.ClearCache()
	second := loader.LineToFileMapping()

	assert.Equal(t, first, second)
}

func TestCachesConcurrentFirstAccess(t *testing.T) {
	loader := loadTestDataset(t)

	var wg sync.WaitGroup
	results := make([]map[string]string, 16)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = loader.LineToFileMapping()
		}()
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, results[0], result)
	}
}
