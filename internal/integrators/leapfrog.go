package integrators

import "github.com/sorenkp/gravsim/internal/nbody"

// Leapfrog is the drift-kick-drift split scheme. Unlike Janus it spreads its
// update across both protocol phases, with the force evaluation between the
// two drifts.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

// Part1 drifts positions through the first half step.
func (l *Leapfrog) Part1(s *nbody.Simulation) error {
	half := 0.5 * s.Dt
	for i := range s.Particles {
		s.Particles[i].Pos = s.Particles[i].Pos.Add(s.Particles[i].Vel.Scale(half))
	}
	return nil
}

// Part2 kicks velocities a full step at the midpoint, drifts the second
// half and advances host time.
func (l *Leapfrog) Part2(s *nbody.Simulation) error {
	if err := s.Force.Accelerate(s.Particles, nbody.ExcludeNone); err != nil {
		return err
	}
	dt := s.Dt
	half := 0.5 * dt
	for i := range s.Particles {
		s.Particles[i].Vel = s.Particles[i].Vel.Add(s.Particles[i].Acc.Scale(dt))
		s.Particles[i].Pos = s.Particles[i].Pos.Add(s.Particles[i].Vel.Scale(half))
	}
	s.T += dt
	return nil
}

func (l *Leapfrog) Synchronize(*nbody.Simulation) error { return nil }

func (l *Leapfrog) Reset() {}
