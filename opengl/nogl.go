//go:build nogl

package opengl

import (
	"os"

	"github.com/PrincetonUniversity/boids"
	"github.com/pkg/errors"
)

// Run returns an error explaining that OpenGL support is disabled.
func Run(s *boids.Simulation, conf *Config) error {
	return errors.Errorf("%s was built without OpenGL support\n"+
		"You must specify an output file ('output' key in the config file).", os.Args[0])
}
