package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/PrincetonUniversity/boids/internal/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive OpenGL simulation.
	Output string `toml:"output" yaml:"output"`

	SwarmSize int   `toml:"swarm_size" yaml:"swarm_size"` // number of boids
	Steps     int   `toml:"steps" yaml:"steps"`           // number of time steps (hdf5 only)
	Seed      int64 `toml:"seed" yaml:"seed"`             // 0 seeds from the clock
	Workers   int   `toml:"workers" yaml:"workers"`       // goroutines per step, 1 is sequential

	// World parameters
	Width    float64 `toml:"width" yaml:"width"`         // unit: pixel (initial window size if interactive)
	Height   float64 `toml:"height" yaml:"height"`       // unit: pixel
	BoidSize float64 `toml:"boid_size" yaml:"boid_size"` // unit: pixel

	// Flocking parameters
	MaxDist     float64 `toml:"max_dist" yaml:"max_dist"`         // unit: pixel
	MaxVelocity float64 `toml:"max_velocity" yaml:"max_velocity"` // unit: pixel/step

	// Extra computations parameters
	MaxGroupDist float64 `toml:"max_group_dist" yaml:"max_group_dist"` // unit: pixel

	LogLevel string `toml:"log_level" yaml:"log_level"` // debug, info, warn, error or silent
}

// DefaultConf are the default parameters.
var DefaultConf = Config{
	Output:       "",
	SwarmSize:    40,
	Steps:        1000,
	Seed:         0,
	Workers:      1,
	Width:        800,
	Height:       800,
	BoidSize:     10,
	MaxDist:      50,
	MaxVelocity:  10,
	MaxGroupDist: 50,
	LogLevel:     "info",
}

// ParseConfig parses the TOML or YAML config file whose path is provided.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := DefaultConf
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "config")
		}
		if err := yaml.Unmarshal(b, &conf); err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", path)
		}
	default:
		md, err := toml.DecodeFile(path, &conf)
		if err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", path)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.Errorf("config: unknown keys %v in %s", keys, path)
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks that the parameters make sense.
func (c *Config) Validate() error {
	switch {
	case c.SwarmSize <= 0:
		return errors.Errorf("config: swarm_size must be positive, got %d", c.SwarmSize)
	case c.Output != "" && c.Steps <= 0:
		return errors.Errorf("config: steps must be positive, got %d", c.Steps)
	case c.Workers < 0:
		return errors.Errorf("config: workers must not be negative, got %d", c.Workers)
	case !(c.Width > 0) || !(c.Height > 0):
		return errors.Errorf("config: width and height must be positive, got %gx%g", c.Width, c.Height)
	case c.BoidSize < 0:
		return errors.Errorf("config: boid_size must not be negative, got %g", c.BoidSize)
	case !(c.MaxDist > 0):
		return errors.Errorf("config: max_dist must be positive, got %g", c.MaxDist)
	case !(c.MaxVelocity > 0):
		return errors.Errorf("config: max_velocity must be positive, got %g", c.MaxVelocity)
	case c.MaxGroupDist < 0:
		return errors.Errorf("config: max_group_dist must not be negative, got %g", c.MaxGroupDist)
	}
	if _, err := log.ParseLevel(log.Level(c.LogLevel)); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}
