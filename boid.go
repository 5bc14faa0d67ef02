package boids

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// A Boid is a single flocking agent.
type Boid struct {
	Pos  r2.Vec // position in world units
	Size r2.Vec // visual extent, only used for drawing
	Vel  r2.Vec // displacement per tick
}

// A Sampler draws uniform values in [lo, hi).
type Sampler interface {
	Uniform(lo, hi float64) float64
}

// RandSampler is a Sampler backed by a math/rand source.
type RandSampler struct {
	r *rand.Rand
}

// NewRandSampler returns a Sampler seeded with seed.
func NewRandSampler(seed int64) *RandSampler {
	return &RandSampler{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a uniform value in [lo, hi).
func (s *RandSampler) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// Random returns a boid placed uniformly inside b
// with both velocity components uniform in [0, 1).
func Random(b Bounds, size r2.Vec, src Sampler) Boid {
	return Boid{
		Pos: r2.Vec{
			X: src.Uniform(b.Min.X, b.Max.X),
			Y: src.Uniform(b.Min.Y, b.Max.Y),
		},
		Size: size,
		Vel: r2.Vec{
			X: src.Uniform(0, 1),
			Y: src.Uniform(0, 1),
		},
	}
}

// InitSwarm returns n independently sampled boids.
func InitSwarm(b Bounds, size r2.Vec, n int, src Sampler) []Boid {
	swarm := make([]Boid, n)
	for i := range swarm {
		swarm[i] = Random(b, size, src)
	}
	return swarm
}
