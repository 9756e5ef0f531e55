package dataset

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/railplan/railplan/pkg/config"
	"github.com/railplan/railplan/pkg/railway"
)

// ErrNotLoaded is returned by operations that need a loaded dataset.
var ErrNotLoaded = errors.New("dataset not loaded")

const interchangeConnectionsFile = "interchange_connections.json"
const undergroundSystemsFile = "underground_systems.json"
const indexFile = "railway_lines_index.json"

// UndergroundSystem describes one metro network from the optional
// underground-systems dataset.
type UndergroundSystem struct {
	Stations  []string `json:"stations"`
	Terminals []string `json:"terminals"`
}

// Loader materialises stations, lines and service patterns from the dataset
// directory and answers lookups over them. All derived lookups live in lazy
// per-cache-locked caches so concurrent first access computes each mapping
// once and warm reads stay lock free.
type Loader struct {
	config config.DatasetConfig

	mutex     sync.RWMutex
	loaded    bool
	lines     map[string]*railway.Line
	lineOrder []string
	stations  map[string]*railway.Station

	undergroundSystems map[string]UndergroundSystem

	coordinates      lazyCache[map[string]*railway.Coordinates]
	lineToFile       lazyCache[map[string]string]
	stationToFiles   lazyCache[map[string][]string]
	lineInterchanges lazyCache[map[string][]railway.InterchangeConnection]

	walkingConnections lazyCache[map[railway.StationPair]railway.WalkingConnection]
}

// New creates a Loader for the given dataset configuration. Nothing is read
// until Load is called.
func New(datasetConfig config.DatasetConfig) *Loader {
	if datasetConfig.LinesDirectory == "" {
		datasetConfig.LinesDirectory = filepath.Join(datasetConfig.DataDirectory, "lines")
	}

	return &Loader{
		config:   datasetConfig,
		lines:    map[string]*railway.Line{},
		stations: map[string]*railway.Station{},
	}
}

// Loaded reports whether a load pass has completed successfully.
func (l *Loader) Loaded() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.loaded
}

// ClearCache drops all four derived caches (and the walking connection map)
// without touching the base station and line maps. Subsequent reads
// recompute lazily.
func (l *Loader) ClearCache() {
	l.coordinates.clear()
	l.lineToFile.clear()
	l.stationToFiles.clear()
	l.lineInterchanges.clear()
	l.walkingConnections.clear()
}

// lazyCache holds a derived mapping populated with a check-lock-check
// pattern: readers first probe the atomic pointer without the lock, take the
// builder lock and re-probe, then compute and publish. A reader either sees
// "not yet built" or the fully built value, never a partial one.
type lazyCache[T any] struct {
	value atomic.Pointer[T]
	mutex sync.Mutex
}

func (c *lazyCache[T]) get(build func() T) T {
	if value := c.value.Load(); value != nil {
		return *value
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if value := c.value.Load(); value != nil {
		return *value
	}

	built := build()
	c.value.Store(&built)
	return built
}

func (c *lazyCache[T]) clear() {
	c.value.Store(nil)
}
