package boids

// A Neighborhood is the set of boids close to a focal boid,
// referenced by index into the snapshot it was computed from.
type Neighborhood struct {
	swarm []Boid
	idx   []int
}

// Neighbors returns the boids of swarm strictly closer than radius to swarm[i].
// The focal boid is excluded by index, so a distinct boid sharing all its
// fields is still a neighbor.
func Neighbors(i int, swarm []Boid, radius float64) Neighborhood {
	p := swarm[i].Pos
	n := Neighborhood{swarm: swarm}
	for j, q := range swarm {
		if j == i {
			continue
		}
		if Distance(p, q.Pos) < radius {
			n.idx = append(n.idx, j)
		}
	}
	return n
}

// Len returns the number of neighbors.
func (n Neighborhood) Len() int {
	return len(n.idx)
}

// Indices returns the snapshot indices of the neighbors.
func (n Neighborhood) Indices() []int {
	return append([]int(nil), n.idx...)
}

// Boids returns copies of the neighbors.
func (n Neighborhood) Boids() []Boid {
	out := make([]Boid, len(n.idx))
	for k, j := range n.idx {
		out[k] = n.swarm[j]
	}
	return out
}

// Flock returns the neighbors as a Flock, or false if there are none.
func (n Neighborhood) Flock() (Flock, bool) {
	if len(n.idx) == 0 {
		return Flock{}, false
	}
	return Flock{n: n}, true
}

// A Flock is a non-empty Neighborhood.
// It can only be obtained from Neighborhood.Flock.
type Flock struct {
	n Neighborhood
}

// Len returns the number of boids in the flock, always at least one.
func (f Flock) Len() int {
	return len(f.n.idx)
}

// each calls fn for every member of the flock.
func (f Flock) each(fn func(b Boid)) {
	for _, j := range f.n.idx {
		fn(f.n.swarm[j])
	}
}
