package boids

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// WithMagnitude returns a vector with the direction of v and length m.
// The zero vector has no direction, so it is returned unchanged.
func WithMagnitude(v r2.Vec, m float64) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(m/n, v)
}

// LimitMagnitude returns v rescaled to length max if it is longer than max,
// and v itself otherwise.
func LimitMagnitude(v r2.Vec, max float64) r2.Vec {
	if r2.Norm2(v) <= max*max {
		return v
	}
	return WithMagnitude(v, max)
}
