package boids

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrDegenerateBounds is returned when the world rectangle has no area.
var ErrDegenerateBounds = errors.New("boids: degenerate world bounds")

// Bounds is the axis-aligned world rectangle.
// Positions leaving it on one side reappear on the opposite side.
type Bounds struct {
	r2.Box
}

// Centered returns bounds of the given width and height centered on the origin.
func Centered(width, height float64) Bounds {
	return Bounds{r2.Box{
		Min: r2.Vec{X: -width / 2, Y: -height / 2},
		Max: r2.Vec{X: width / 2, Y: height / 2},
	}}
}

// Validate reports an error wrapping ErrDegenerateBounds
// unless Min < Max on both axes and all coordinates are finite.
func (b Bounds) Validate() error {
	for _, x := range []float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Wrapf(ErrDegenerateBounds, "non-finite coordinate in %v", b.Box)
		}
	}
	if !(b.Min.X < b.Max.X) || !(b.Min.Y < b.Max.Y) {
		return errors.Wrapf(ErrDegenerateBounds, "min %v is not below max %v", b.Min, b.Max)
	}
	return nil
}

// Wrap teleports p to the opposite edge on every axis where it lies outside b.
// Points exactly on an edge are left alone.
func (b Bounds) Wrap(p r2.Vec) r2.Vec {
	switch {
	case p.X < b.Min.X:
		p.X = b.Max.X
	case p.X > b.Max.X:
		p.X = b.Min.X
	}
	switch {
	case p.Y < b.Min.Y:
		p.Y = b.Max.Y
	case p.Y > b.Max.Y:
		p.Y = b.Min.Y
	}
	return p
}
