// Command replay displays a flock recorded by the flock command.
//
// Usage
//
//	replay file.h5 [dataset]
//
// The dataset defaults to "boids". Frames are played in a loop.
// Space pauses and resumes, right arrow steps while paused, Esc quits.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/PrincetonUniversity/boids"
	"github.com/PrincetonUniversity/boids/hdf5"
	"github.com/PrincetonUniversity/boids/internal/log"
	"github.com/PrincetonUniversity/boids/opengl"
	"go.uber.org/zap"
)

const usage = `Usage: replay file.h5 [dataset]

The first argument is the path to an HDF5 file written by flock.
The second argument is optional and is the name of the dataset to replay.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatal(nil, fmt.Errorf("%d arguments provided (1 required, 1 optional)\n\n%s", len(os.Args)-1, usage))
	}
	dataset := "boids"
	if len(os.Args) == 3 {
		dataset = os.Args[2]
	}

	logger, err := log.New(log.LevelInfo)
	if err != nil {
		log.Fatal(nil, err)
	}
	defer logger.Sync()

	loader, err := hdf5.NewLoader(os.Args[1], dataset)
	if err != nil {
		log.Fatal(logger, err)
	}
	defer loader.Close()

	sim := boids.New(nil, boids.Environment{}, boids.DefaultParams)
	if err := loader.Load(&sim.Swarm); err != nil {
		log.Fatal(logger, err)
	}
	logger.Info("replaying",
		zap.String("file", os.Args[1]),
		zap.Int("frames", loader.Frames()),
		zap.Int("swarm_size", len(sim.Swarm)),
	)

	err = opengl.Run(sim, &opengl.Config{
		Step:   func() error { return loader.Load(&sim.Swarm) },
		Title:  "Boids replay",
		Width:  800,
		Height: 800,
		Log:    logger,
	})
	if err != nil {
		log.Fatal(logger, err)
	}
}
