// Package experiment runs scripted studies on top of the simulation core.
package experiment

import (
	"context"
	"fmt"

	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/integrators"
	"github.com/sorenkp/gravsim/internal/nbody"
)

// RoundTripResult reports how exactly a forward trajectory was retraced
// after a time-reversal flip.
type RoundTripResult struct {
	Steps           int
	MaxPosDeviation float64
	MaxVelDeviation float64
	EnergyForward   float64
	EnergyReturn    float64
}

// RoundTrip integrates steps forward with the Janus scheme, flips the
// generation roles, negates the timestep and integrates the same number of
// steps back, then compares against the quantized start state (the host
// view after the first step). For an intact lattice the deviations are
// identically zero. The simulation is left at the returned state with the
// negated timestep.
func RoundTrip(ctx context.Context, s *nbody.Simulation, j *integrators.Janus, eval *gravity.Direct, steps int) (*RoundTripResult, error) {
	if steps < 1 {
		return nil, fmt.Errorf("experiment: steps must be >= 1, got %d", steps)
	}

	if err := s.Step(); err != nil {
		return nil, err
	}
	ref := s.Snapshot()
	res := &RoundTripResult{
		Steps:         steps,
		EnergyForward: eval.Energy(s.Particles),
	}

	for i := 1; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return nil, err
		}
	}

	if err := j.Flip(); err != nil {
		return nil, err
	}
	s.Dt = -s.Dt

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return nil, err
		}
	}

	res.EnergyReturn = eval.Energy(s.Particles)
	for i := range s.Particles {
		if d := s.Particles[i].Pos.Sub(ref.Particles[i].Pos).Norm(); d > res.MaxPosDeviation {
			res.MaxPosDeviation = d
		}
		if d := s.Particles[i].Vel.Sub(ref.Particles[i].Vel).Norm(); d > res.MaxVelDeviation {
			res.MaxVelDeviation = d
		}
	}
	return res, nil
}
