package boids

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Steering constants.
const (
	SeparationRadius    = 35.0 // neighbors closer than this push the boid away
	CohesionMagnitude   = 1.0
	AlignmentMagnitude  = 1.0
	SeparationMagnitude = 4.0
)

// Cohesion returns the direction from self to the centroid of f.
func Cohesion(self Boid, f Flock) r2.Vec {
	var c r2.Vec
	if f.Len() == 0 {
		return c // zero Flock
	}
	f.each(func(b Boid) {
		c = r2.Add(c, b.Pos)
	})
	n := float64(f.Len())
	c = r2.Vec{X: c.X / n, Y: c.Y / n}
	return WithMagnitude(r2.Sub(c, self.Pos), CohesionMagnitude)
}

// Alignment returns the velocity change that would bring self
// to the mean velocity of f.
func Alignment(self Boid, f Flock) r2.Vec {
	var v r2.Vec
	if f.Len() == 0 {
		return v // zero Flock
	}
	f.each(func(b Boid) {
		v = r2.Add(v, b.Vel)
	})
	n := float64(f.Len())
	v = r2.Vec{X: v.X / n, Y: v.Y / n}
	return WithMagnitude(r2.Sub(v, self.Vel), AlignmentMagnitude)
}

// Separation returns the direction away from the members of f
// closer than SeparationRadius, or the zero vector if there are none.
func Separation(self Boid, f Flock) r2.Vec {
	var v r2.Vec
	f.each(func(b Boid) {
		if Distance(self.Pos, b.Pos) < SeparationRadius {
			v = r2.Add(v, r2.Sub(self.Pos, b.Pos))
		}
	})
	return WithMagnitude(v, SeparationMagnitude)
}
