// Package boids runs flocking simulations of autonomous agents.
//
// A fixed number of boids move in a 2D toroidal world.
// Each tick, every boid steers from purely local interactions:
// it moves towards the center of its neighbors (cohesion),
// matches their average velocity (alignment)
// and avoids those that are too close (separation).
package boids

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Params contains the tunable parameters of the flocking rule.
type Params struct {
	MaxDist     float64 // neighbor radius
	MaxVelocity float64 // speed cap
}

// DefaultParams are the default flocking parameters.
var DefaultParams = Params{
	MaxDist:     50,
	MaxVelocity: 10,
}

// An Environment contains all the parameters relative to the world.
type Environment struct {
	// Size returns the current width and height of the drawable surface.
	// It is sampled once per tick and the world bounds are a rectangle
	// of that size centered on the origin.
	Size func() (width, height float64)
}

// FixedSize returns a Size function for a surface that never changes.
func FixedSize(width, height float64) func() (float64, float64) {
	return func() (float64, float64) { return width, height }
}

// A Simulation contains all the state and parameters of a simulation.
type Simulation struct {
	Swarm  []Boid
	Env    Environment
	Params Params

	// Log receives one debug entry per tick. It is never nil after New.
	Log *zap.Logger

	snapshot []Boid // state of the swarm at the start of the current tick
	bounds   Bounds // bounds used by the last tick
	ticks    int
}

// New returns a simulation that owns swarm.
func New(swarm []Boid, env Environment, p Params) *Simulation {
	return &Simulation{
		Swarm:    swarm,
		Env:      env,
		Params:   p,
		Log:      zap.NewNop(),
		snapshot: make([]Boid, len(swarm)),
	}
}

// Bounds returns the world bounds used by the last tick.
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// begin samples the world bounds and freezes the swarm into the snapshot.
// The swarm is untouched if the bounds are degenerate.
func (s *Simulation) begin() (Bounds, error) {
	if s.Env.Size == nil {
		return Bounds{}, errors.New("boids: environment has no surface size")
	}
	b := Centered(s.Env.Size())
	if err := b.Validate(); err != nil {
		return b, err
	}
	if len(s.snapshot) != len(s.Swarm) {
		s.snapshot = make([]Boid, len(s.Swarm))
	}
	copy(s.snapshot, s.Swarm)
	return b, nil
}

// end records a completed tick.
func (s *Simulation) end(b Bounds, isolated int) {
	s.bounds = b
	s.ticks++
	if s.Log != nil {
		w, h := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
		s.Log.Debug("tick",
			zap.Int("tick", s.ticks),
			zap.Float64("width", w),
			zap.Float64("height", h),
			zap.Int("isolated", isolated),
		)
	}
}

// Step runs a single simulation step.
// Every boid sees the swarm as it was at the start of the step.
func (s *Simulation) Step() error {
	b, err := s.begin()
	if err != nil {
		return err
	}
	var isolated int
	for i := range s.Swarm {
		if s.Params.update(i, s.Swarm, s.snapshot, b) {
			isolated++
		}
	}
	s.end(b, isolated)
	return nil
}

// StepParallel runs a single simulation step like Step,
// splitting the swarm into contiguous chunks updated by up to workers goroutines.
// A non-positive workers uses GOMAXPROCS.
// The result is identical to Step. A step is never interrupted:
// ctx is only checked before it starts.
func (s *Simulation) StepParallel(ctx context.Context, workers int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := s.begin()
	if err != nil {
		return err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(s.Swarm)
	chunk := max((n+workers-1)/workers, 1)

	// each goroutine writes its own boids and its own counter
	isolated := make([]int, workers)
	var g errgroup.Group
	g.SetLimit(workers)
	for w, lo := 0, 0; lo < n; w, lo = w+1, lo+chunk {
		w, lo, hi := w, lo, min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if s.Params.update(i, s.Swarm, s.snapshot, b) {
					isolated[w]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total int
	for _, k := range isolated {
		total += k
	}
	s.end(b, total)
	return nil
}
