package lib

/* config.go contains the parsing and validation of pico's config files. */

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleConfigFile = `[pico]

#######################
# Required Parameters #
#######################

# Number of steps the bench driver runs for each species.
Steps = 10

# Fraction of the active particles removed through the compaction kernel on
# each step. Must be in [0, 1]. Values near 0.5 put most of the array inside
# the danger zone and exercise the reconciliation pass heavily.
RemoveFraction = 0.05

#######################
# Optional Parameters #
#######################

# Number of threads to run on. -1 uses every core on the node. Default is -1.
# Threads = -1

# Seed for the generator that fabricates particles and mover lists. Runs with
# the same seed are bit-for-bit identical. Default is 42.
# Seed = 42

# If set, each species' arrays are written to this directory as a compressed
# checkpoint after its last step.
# CheckpointDir = path/to/output/dir

# One section per species. The section name is the species name.
[species "electron"]

# Number of particles the species starts with.
Count = 1000000

# Number of slots in the species' arrays. Must be at least Count. Defaults
# to Count.
# Capacity = 1000000
`
)

// PicoConfig stores the contents of the [pico] section of a config file.
type PicoConfig struct {
	Threads int
	Seed int64
	Steps int
	RemoveFraction float64
	CheckpointDir string
}

// SpeciesConfig stores the contents of one [species "name"] section of a
// config file.
type SpeciesConfig struct {
	Count int
	Capacity int
}

// Config stores the contents of a full pico config file.
type Config struct {
	Pico PicoConfig
	Species map[string]*SpeciesConfig
}

// ParseConfig reads and validates the config file with a given name.
func ParseConfig(fname string) (*Config, error) {
	cfg := defaultConfig()
	err := gcfg.ReadFileInto(cfg, fname)
	if err != nil { return nil, err }
	return cfg, cfg.validate()
}

// ParseConfigString parses and validates a config file passed as a string.
// It mainly exists for testing.
func ParseConfigString(s string) (*Config, error) {
	cfg := defaultConfig()
	err := gcfg.ReadStringInto(cfg, s)
	if err != nil { return nil, err }
	return cfg, cfg.validate()
}

func defaultConfig() *Config {
	return &Config{
		Pico: PicoConfig{ Threads: -1, Seed: 42 },
	}
}

// validate checks every config parameter that can be checked without
// touching the file system.
func (cfg *Config) validate() error {
	pc := &cfg.Pico
	if pc.Steps <= 0 {
		return fmt.Errorf("The variable 'Steps' was set to %d, but it " +
			"needs to be positive.", pc.Steps)
	}
	if pc.RemoveFraction < 0 || pc.RemoveFraction > 1 {
		return fmt.Errorf("The variable 'RemoveFraction' was set to %g, " +
			"but it needs to be in the range [0, 1].", pc.RemoveFraction)
	}
	if len(cfg.Species) == 0 {
		return fmt.Errorf("The config file doesn't contain any [species] " +
			"sections.")
	}

	for name, sc := range cfg.Species {
		if sc.Count <= 0 {
			return fmt.Errorf("The species '%s' set 'Count' to %d, but it " +
				"needs to be positive.", name, sc.Count)
		}
		if sc.Capacity == 0 { sc.Capacity = sc.Count }
		if sc.Capacity < sc.Count {
			return fmt.Errorf("The species '%s' set 'Capacity' to %d, " +
				"which is smaller than its 'Count', %d.",
				name, sc.Capacity, sc.Count)
		}
	}

	return nil
}
