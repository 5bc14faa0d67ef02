package boids

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// update advances swarm[i] by one tick.
// Neighbors are read from snapshot, which must not change during the tick.
// It reports whether the boid had no neighbor.
func (p Params) update(i int, swarm, snapshot []Boid, b Bounds) (isolated bool) {
	self := &swarm[i]

	// steer towards the local flock, or coast if alone
	if f, ok := Neighbors(i, snapshot, p.MaxDist).Flock(); ok {
		v1 := Cohesion(*self, f)
		v2 := Alignment(*self, f)
		v3 := Separation(*self, f)
		self.Vel = r2.Add(r2.Add(r2.Add(self.Vel, v1), v2), v3)
	} else {
		isolated = true
	}

	self.Vel = LimitMagnitude(self.Vel, p.MaxVelocity)
	self.Pos = b.Wrap(self.Pos)
	self.Pos = r2.Add(self.Pos, self.Vel)
	return isolated
}
