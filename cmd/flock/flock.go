// Command flock runs boids: flocking simulations of autonomous agents.
//
// Usage
//
// The flock command takes one optional argument:
//
//	flock [config_file]
//
// It is the path to a TOML config file, or a YAML one if its name ends
// in .yaml or .yml. If no config file is specified, an interactive
// simulation with default parameters will run in an OpenGL window.
//
// Interactive mode
//
// In interactive mode, the world is the window: resizing the window
// resizes the world. The simulation can be paused/resumed with space.
// While in pause, pressing right arrow will perform a single step.
// Pressing Esc or closing the window will quit.
//
// Recording mode
//
// If the config file has an output key, the simulation runs for the
// given number of steps in a world of fixed width and height and every
// step is saved to an HDF5 file with the following datasets:
//
//	config        attributes hold the configuration, time and run ID
//	boids         steps × swarm_size compound {Pos, Vel, Size, Group}
//	polarization  steps
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/PrincetonUniversity/boids"
	"github.com/PrincetonUniversity/boids/hdf5"
	"github.com/PrincetonUniversity/boids/internal/log"
	"github.com/PrincetonUniversity/boids/opengl"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

const usage = `Usage: flock [config_file]

The first argument is optional and is the path to a TOML or YAML config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		c := DefaultConf
		conf = &c
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		log.Fatal(nil, err)
	}

	logger, err := log.New(log.Level(conf.LogLevel))
	if err != nil {
		log.Fatal(nil, err)
	}
	defer logger.Sync()

	// resolve the seed now so that it is logged and recorded
	if conf.Seed == 0 {
		conf.Seed = time.Now().UnixNano()
	}

	run := uuid.New()
	logger = logger.With(zap.Stringer("run", run))

	// setup simulation
	sim := setup(conf, logger)
	logger.Info("starting",
		zap.Int("swarm_size", conf.SwarmSize),
		zap.Int64("seed", conf.Seed),
		zap.Float64("max_dist", conf.MaxDist),
		zap.Float64("max_velocity", conf.MaxVelocity),
		zap.Int("workers", conf.Workers),
	)

	// run interactively or not depending on config
	step := stepper(sim, conf.Workers)
	if conf.Output == "" {
		err = opengl.Run(sim, &opengl.Config{
			Step:   step,
			Title:  "Boids",
			Width:  int(conf.Width),
			Height: int(conf.Height),
			Log:    logger,
		})
	} else {
		err = hdf5.Run(sim, &hdf5.Config{
			Output: conf.Output,
			Steps:  conf.Steps,
			Step:   step,
			RunID:  run,
			Params: conf,
			Datasets: []*hdf5.Dataset{
				hdf5.BoidsDataset("boids", conf.SwarmSize, conf.MaxGroupDist),
				hdf5.PolarizationDataset("polarization"),
			},
			Log: logger,
		})
	}
	if err != nil {
		log.Fatal(logger, err)
	}
	logger.Info("done", zap.Int("ticks", sim.Ticks()), zap.Float64("polarization", boids.Polarization(sim.Swarm)))
}

// setup initializes the state and parameters of all boids.
func setup(conf *Config, logger *zap.Logger) *boids.Simulation {
	bounds := boids.Centered(conf.Width, conf.Height)
	size := r2.Vec{X: conf.BoidSize, Y: conf.BoidSize}
	swarm := boids.InitSwarm(bounds, size, conf.SwarmSize, boids.NewRandSampler(conf.Seed))

	s := boids.New(swarm, boids.Environment{
		Size: boids.FixedSize(conf.Width, conf.Height),
	}, boids.Params{
		MaxDist:     conf.MaxDist,
		MaxVelocity: conf.MaxVelocity,
	})
	if logger != nil {
		s.Log = logger
	}
	return s
}

// stepper returns the function advancing s by one tick.
func stepper(s *boids.Simulation, workers int) func() error {
	if workers == 1 {
		return s.Step
	}
	return func() error {
		return errors.WithStack(s.StepParallel(context.Background(), workers))
	}
}
