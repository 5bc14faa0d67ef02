package boids

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestSim(swarm []Boid, w, h float64) *Simulation {
	return New(swarm, Environment{Size: FixedSize(w, h)}, DefaultParams)
}

func TestStepSpeedCap(t *testing.T) {
	swarm := InitSwarm(Centered(400, 400), r2.Vec{X: 10, Y: 10}, 60, NewRandSampler(3))
	swarm[0].Vel = r2.Vec{X: 100, Y: -100}
	s := newTestSim(swarm, 400, 400)
	for k := 0; k < 200; k++ {
		require.NoError(t, s.Step())
		for i, b := range s.Swarm {
			assert.LessOrEqual(t, r2.Norm(b.Vel), s.Params.MaxVelocity+1e-9, "tick %d boid %d", k, i)
		}
	}
	assert.Equal(t, 200, s.Ticks())
}

func TestStepCoasting(t *testing.T) {
	b := at(0, 0)
	b.Vel = r2.Vec{X: 3, Y: 4}
	s := newTestSim([]Boid{b, at(300, 300)}, 1000, 1000)
	require.NoError(t, s.Step())
	assert.Equal(t, r2.Vec{X: 3, Y: 4}, s.Swarm[0].Vel)
	assert.Equal(t, r2.Vec{X: 3, Y: 4}, s.Swarm[0].Pos)
}

func TestStepWrap(t *testing.T) {
	const ε = 1e-6
	b := at(100+ε, 10)
	s := newTestSim([]Boid{b}, 200, 200)
	require.NoError(t, s.Step())
	assert.Equal(t, -100.0, s.Swarm[0].Pos.X)
	assert.Equal(t, 10.0, s.Swarm[0].Pos.Y)

	// inside the bounds only integration moves the boid
	b = at(20, 30)
	b.Vel = r2.Vec{X: 1, Y: -1}
	s = newTestSim([]Boid{b}, 200, 200)
	require.NoError(t, s.Step())
	assert.Equal(t, r2.Vec{X: 21, Y: 29}, s.Swarm[0].Pos)
}

func TestStepWrapsBeforeMoving(t *testing.T) {
	b := at(-100.5, 0)
	b.Vel = r2.Vec{X: -2}
	s := newTestSim([]Boid{b}, 200, 200)
	require.NoError(t, s.Step())
	assert.Equal(t, r2.Vec{X: 98, Y: 0}, s.Swarm[0].Pos)
}

// expected computes the new velocity of swarm[i] from the pre-tick state.
func expected(swarm []Boid, i int) r2.Vec {
	self := swarm[i]
	v := self.Vel
	if f, ok := Neighbors(i, swarm, DefaultParams.MaxDist).Flock(); ok {
		v = r2.Add(r2.Add(r2.Add(v, Cohesion(self, f)), Alignment(self, f)), Separation(self, f))
	}
	return LimitMagnitude(v, DefaultParams.MaxVelocity)
}

func TestStepSnapshotIsolation(t *testing.T) {
	a := at(0, 0)
	a.Vel = r2.Vec{X: 1, Y: 0}
	b := at(20, 5)
	b.Vel = r2.Vec{X: 0, Y: -2}

	pre := []Boid{a, b}
	wantA, wantB := expected(pre, 0), expected(pre, 1)

	for _, order := range [][]Boid{{a, b}, {b, a}} {
		s := newTestSim(append([]Boid(nil), order...), 500, 500)
		require.NoError(t, s.Step())
		got := map[r2.Vec]r2.Vec{}
		for k, q := range s.Swarm {
			got[order[k].Pos] = q.Vel
		}
		assert.Equal(t, wantA, got[a.Pos])
		assert.Equal(t, wantB, got[b.Pos])
	}
}

func TestStepDegenerateBounds(t *testing.T) {
	swarm := []Boid{at(0, 0), at(1, 1)}
	orig := append([]Boid(nil), swarm...)
	for _, size := range [][2]float64{{0, 100}, {100, 0}, {-5, 5}} {
		s := newTestSim(swarm, size[0], size[1])
		assert.ErrorIs(t, s.Step(), ErrDegenerateBounds)
		assert.ErrorIs(t, s.StepParallel(context.Background(), 2), ErrDegenerateBounds)
		assert.Equal(t, orig, s.Swarm)
		assert.Zero(t, s.Ticks())
	}
}

func TestStepWithoutSize(t *testing.T) {
	s := New([]Boid{at(0, 0)}, Environment{}, DefaultParams)
	assert.Error(t, s.Step())
}

func TestStepSamplesSizeEachTick(t *testing.T) {
	sizes := [][2]float64{{100, 100}, {300, 200}}
	k := 0
	s := New([]Boid{at(0, 0)}, Environment{Size: func() (float64, float64) {
		w, h := sizes[k][0], sizes[k][1]
		k++
		return w, h
	}}, DefaultParams)
	require.NoError(t, s.Step())
	assert.Equal(t, Centered(100, 100), s.Bounds())
	require.NoError(t, s.Step())
	assert.Equal(t, Centered(300, 200), s.Bounds())
}

func TestStepParallelMatchesStep(t *testing.T) {
	swarm := InitSwarm(Centered(300, 300), r2.Vec{X: 10, Y: 10}, 97, NewRandSampler(11))
	for _, workers := range []int{0, 1, 3, 8, 200} {
		par := newTestSim(append([]Boid(nil), swarm...), 300, 300)
		seq := newTestSim(append([]Boid(nil), swarm...), 300, 300)
		for k := 0; k < 20; k++ {
			require.NoError(t, seq.Step())
			require.NoError(t, par.StepParallel(context.Background(), workers))
		}
		assert.Equal(t, seq.Swarm, par.Swarm, "workers=%d", workers)
		assert.Equal(t, seq.Ticks(), par.Ticks())
	}
}

func TestStepParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	swarm := []Boid{at(0, 0), at(1, 1)}
	s := newTestSim(append([]Boid(nil), swarm...), 100, 100)
	assert.ErrorIs(t, s.StepParallel(ctx, 2), context.Canceled)
	assert.Equal(t, swarm, s.Swarm)
}

func TestStepLogsTicks(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := newTestSim([]Boid{at(0, 0), at(200, 200)}, 1000, 800)
	s.Log = zap.New(core)
	require.NoError(t, s.Step())

	entries := logs.FilterMessage("tick").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["tick"])
	assert.EqualValues(t, 1000, fields["width"])
	assert.EqualValues(t, 800, fields["height"])
	assert.EqualValues(t, 2, fields["isolated"])
}
