package analysis

import (
	"context"
	"errors"
	"math"

	"github.com/sorenkp/gravsim/internal/nbody"
)

// renormAt is the phase-space separation beyond which the shadow
// trajectory is pulled back to the reference, preventing saturation.
const renormAt = 1.0

// Perturb displaces the first body of s by eps along x, producing the
// shadow initial condition for a divergence measurement.
func Perturb(s *nbody.Simulation, eps float64) {
	if len(s.Particles) > 0 {
		s.Particles[0].Pos.X += eps
	}
}

func separation(a, b *nbody.Simulation) float64 {
	sum := 0.0
	for i := range a.Particles {
		dp := b.Particles[i].Pos.Sub(a.Particles[i].Pos)
		dv := b.Particles[i].Vel.Sub(a.Particles[i].Vel)
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}

// Lyapunov estimates the largest Lyapunov exponent from a reference
// simulation and a perturbed shadow copy, by the trajectory separation
// method: both are stepped in lockstep, the log of their separation growth
// is accumulated, and the shadow is renormalized back toward the reference
// whenever the separation saturates. Renormalization resets the shadow's
// active integrator so schemes with internal state re-seed from the
// adjusted particles.
func Lyapunov(ctx context.Context, ref, shadow *nbody.Simulation, steps int) (float64, error) {
	if ref.N() != shadow.N() {
		return 0, errors.New("analysis: simulations have different body counts")
	}
	d0 := separation(ref, shadow)
	if d0 == 0 {
		return 0, errors.New("analysis: shadow is not perturbed")
	}

	sumLog := 0.0
	count := 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		if err := ref.Step(); err != nil {
			return 0, err
		}
		if err := shadow.Step(); err != nil {
			return 0, err
		}

		sep := separation(ref, shadow)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		if sep > renormAt {
			scale := d0 / sep
			for k := range shadow.Particles {
				rp := ref.Particles[k]
				sp := &shadow.Particles[k]
				sp.Pos = rp.Pos.Add(sp.Pos.Sub(rp.Pos).Scale(scale))
				sp.Vel = rp.Vel.Add(sp.Vel.Sub(rp.Vel).Scale(scale))
			}
			if ig := shadow.Integrator(shadow.Scheme); ig != nil {
				ig.Reset()
			}
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * math.Abs(ref.Dt)), nil
}
