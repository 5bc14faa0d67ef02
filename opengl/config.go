// Package opengl displays boids simulations in an interactive window.
//
// Space pauses and resumes the simulation. While paused, the right arrow
// performs a single step. Esc or closing the window quits.
package opengl

import (
	"go.uber.org/zap"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Step       func() error // go to next step
	ForcePause bool         // step manually only?
	Title      string       // window title
	Log        *zap.Logger  // may be nil

	// initial window size in screen coordinates
	Width  int
	Height int
}
