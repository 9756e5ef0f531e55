package config

import (
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config carries everything the planner stack needs that is policy rather
// than data: where the dataset lives, the search budgets and the integrity
// check severity.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Search  SearchConfig  `yaml:"search"`
}

type DatasetConfig struct {
	DataDirectory  string `yaml:"data_directory"`
	LinesDirectory string `yaml:"lines_directory"`

	// KeyStations are sentinel names checked after every load.
	KeyStations []string `yaml:"key_stations"`

	// RequireKeyStations turns a failed key-station check into a load
	// failure instead of a warning.
	RequireKeyStations bool `yaml:"require_key_stations"`
}

type SearchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxIterations  int `yaml:"max_iterations"`
	MaxPathLength  int `yaml:"max_path_length"`
	MaxRoutes      int `yaml:"max_routes"`
	MaxChanges     int `yaml:"max_changes"`
}

// Defaults returns the configuration used when no file is supplied.
func Defaults() *Config {
	return &Config{
		Dataset: DatasetConfig{
			DataDirectory: "data",
			KeyStations: []string{
				"Farnborough (Main)",
				"London Waterloo",
				"Fleet",
				"Woking",
				"Clapham Junction",
			},
		},
		Search: SearchConfig{
			TimeoutSeconds: 10,
			MaxIterations:  10000,
			MaxPathLength:  20,
			MaxRoutes:      5,
			MaxChanges:     3,
		},
	}
}

// Load reads a YAML config file, filling any omitted field from Defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	config := Defaults()

	if path == "" {
		return config, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, err
	}

	applyDefaults(config)

	log.Debug().Str("path", path).Msg("Loaded configuration file")

	return config, nil
}

func applyDefaults(config *Config) {
	defaults := Defaults()

	if config.Dataset.DataDirectory == "" {
		config.Dataset.DataDirectory = defaults.Dataset.DataDirectory
	}
	if config.Dataset.KeyStations == nil {
		config.Dataset.KeyStations = defaults.Dataset.KeyStations
	}
	if config.Search.TimeoutSeconds == 0 {
		config.Search.TimeoutSeconds = defaults.Search.TimeoutSeconds
	}
	if config.Search.MaxIterations == 0 {
		config.Search.MaxIterations = defaults.Search.MaxIterations
	}
	if config.Search.MaxPathLength == 0 {
		config.Search.MaxPathLength = defaults.Search.MaxPathLength
	}
	if config.Search.MaxRoutes == 0 {
		config.Search.MaxRoutes = defaults.Search.MaxRoutes
	}
	if config.Search.MaxChanges == 0 {
		config.Search.MaxChanges = defaults.Search.MaxChanges
	}
}
