package boids

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Centroid returns the mean position of the swarm.
func Centroid(swarm []Boid) r2.Vec {
	var c r2.Vec
	if len(swarm) == 0 {
		return c
	}
	for _, b := range swarm {
		c = r2.Add(c, b.Pos)
	}
	n := float64(len(swarm))
	return r2.Vec{X: c.X / n, Y: c.Y / n}
}

// Polarization returns the norm of the mean heading of the swarm, between 0 and 1.
// 1 means all boids move in the same direction.
// Boids at rest have no heading and are ignored.
func Polarization(swarm []Boid) float64 {
	var sum r2.Vec
	var n int
	for _, b := range swarm {
		if b.Vel == (r2.Vec{}) {
			continue
		}
		sum = r2.Add(sum, r2.Unit(b.Vel))
		n++
	}
	if n == 0 {
		return 0
	}
	return r2.Norm(sum) / float64(n)
}

// Groups labels the connected components of the swarm where two boids are
// connected if they are closer than maxDist. Labels are consecutive integers
// starting at 0, in order of first appearance.
func Groups(swarm []Boid, maxDist float64) []int {
	parent := make([]int, len(swarm))
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range swarm {
		for j := i + 1; j < len(swarm); j++ {
			if Distance(swarm[i].Pos, swarm[j].Pos) < maxDist {
				if ri, rj := find(i), find(j); ri != rj {
					parent[max(ri, rj)] = min(ri, rj)
				}
			}
		}
	}

	labels := make([]int, len(swarm))
	index := make(map[int]int)
	for i := range swarm {
		r := find(i)
		l, ok := index[r]
		if !ok {
			l = len(index)
			index[r] = l
		}
		labels[i] = l
	}
	return labels
}
