package boids

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestWithMagnitude(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Vec
		m    float64
		want r2.Vec
	}{
		{"shrink", r2.Vec{X: 3, Y: 4}, 1, r2.Vec{X: 0.6, Y: 0.8}},
		{"grow", r2.Vec{X: 3, Y: 4}, 10, r2.Vec{X: 6, Y: 8}},
		{"negative components", r2.Vec{X: -5, Y: 0}, 4, r2.Vec{X: -4, Y: 0}},
		{"zero vector", r2.Vec{}, 4, r2.Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithMagnitude(tt.v, tt.m)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestWithMagnitudeZeroIsNotNaN(t *testing.T) {
	for _, m := range []float64{1, 4, 1e9} {
		got := WithMagnitude(r2.Vec{}, m)
		assert.False(t, math.IsNaN(got.X) || math.IsNaN(got.Y))
		assert.Equal(t, r2.Vec{}, got)
	}
}

func TestLimitMagnitude(t *testing.T) {
	v := r2.Vec{X: 3, Y: 4}
	assert.Equal(t, v, LimitMagnitude(v, 5), "at the limit")
	assert.Equal(t, v, LimitMagnitude(v, 6), "below the limit")

	got := LimitMagnitude(r2.Vec{X: 30, Y: 40}, 10)
	assert.InDelta(t, 10, r2.Norm(got), 1e-12)
	assert.InDelta(t, 6, got.X, 1e-12)
	assert.InDelta(t, 8, got.Y, 1e-12)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5}))
	assert.Equal(t, 0.0, Distance(r2.Vec{X: 2, Y: 2}, r2.Vec{X: 2, Y: 2}))
}
