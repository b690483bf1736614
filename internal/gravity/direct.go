// Package gravity implements force evaluation for gravitational N-body
// systems by direct pairwise summation.
package gravity

import (
	"math"

	"github.com/sorenkp/gravsim/internal/nbody"
)

// Direct is the O(n²) summation evaluator with Plummer softening.
type Direct struct {
	G         float64
	Softening float64
}

// NewDirect returns a Direct evaluator with gravitational constant g and
// softening length eps.
func NewDirect(g, eps float64) *Direct {
	return &Direct{G: g, Softening: eps}
}

// Accelerate writes the gravitational acceleration of every body into its
// Acc field. Interaction terms named by excl are skipped.
func (d *Direct) Accelerate(ps []nbody.Particle, excl nbody.Exclusion) error {
	for i := range ps {
		ps[i].Acc = nbody.Vec3{}
	}
	eps2 := d.Softening * d.Softening

	first := 0
	if excl == nbody.ExcludePrimary {
		first = 1
	}

	for i := first; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			r := ps[j].Pos.Sub(ps[i].Pos)
			r2 := r.Dot(r) + eps2
			rInv := 1.0 / math.Sqrt(r2)
			r3Inv := rInv * rInv * rInv

			fij := d.G * ps[j].Mass * r3Inv
			ps[i].Acc = ps[i].Acc.Add(r.Scale(fij))

			fji := d.G * ps[i].Mass * r3Inv
			ps[j].Acc = ps[j].Acc.Sub(r.Scale(fji))
		}
	}
	return nil
}

// Energy returns the total mechanical energy of the system, using the same
// softened potential the evaluator integrates with.
func (d *Direct) Energy(ps []nbody.Particle) float64 {
	ke := 0.0
	pe := 0.0
	eps2 := d.Softening * d.Softening

	for i := range ps {
		ke += 0.5 * ps[i].Mass * ps[i].Vel.Dot(ps[i].Vel)
		for j := i + 1; j < len(ps); j++ {
			r := ps[j].Pos.Sub(ps[i].Pos)
			dist := math.Sqrt(r.Dot(r) + eps2)
			pe -= d.G * ps[i].Mass * ps[j].Mass / dist
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum of the system.
func Momentum(ps []nbody.Particle) nbody.Vec3 {
	var p nbody.Vec3
	for i := range ps {
		p = p.Add(ps[i].Vel.Scale(ps[i].Mass))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func AngularMomentum(ps []nbody.Particle) nbody.Vec3 {
	var l nbody.Vec3
	for i := range ps {
		l = l.Add(ps[i].Pos.Cross(ps[i].Vel).Scale(ps[i].Mass))
	}
	return l
}
