package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/nbody"
)

func boundPair() *nbody.Simulation {
	s := nbody.New(gravity.NewDirect(1, 0))
	s.Particles = []nbody.Particle{
		{Pos: nbody.Vec3{X: 0.5}, Vel: nbody.Vec3{Y: 0.7071067811865476}, Mass: 1},
		{Pos: nbody.Vec3{X: -0.5}, Vel: nbody.Vec3{Y: -0.7071067811865476}, Mass: 1},
	}
	return s
}

func TestEnergyMeanValue(t *testing.T) {
	eval := gravity.NewDirect(1, 0)
	m := NewEnergy(eval)
	s := boundPair()

	m.Observe(s)
	m.Observe(s)
	if v := m.Value(); math.Abs(v+0.5) > 1e-12 {
		t.Errorf("mean energy = %v, want -0.5", v)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset = %v, want 0", m.Value())
	}
}

func TestEnergyDriftZeroForStaticState(t *testing.T) {
	m := NewEnergyDrift(gravity.NewDirect(1, 0))
	s := boundPair()
	for i := 0; i < 5; i++ {
		m.Observe(s)
	}
	if m.Value() != 0 {
		t.Errorf("drift = %v for unchanged state, want 0", m.Value())
	}
}

func TestEnergyDriftTracksMaximum(t *testing.T) {
	m := NewEnergyDrift(gravity.NewDirect(1, 0))
	s := boundPair()
	m.Observe(s)

	// double both speeds: energy -0.5 -> +1.0, relative drift 3
	for i := range s.Particles {
		s.Particles[i].Vel = s.Particles[i].Vel.Scale(2)
	}
	m.Observe(s)

	// back to the initial state; the maximum must stick
	for i := range s.Particles {
		s.Particles[i].Vel = s.Particles[i].Vel.Scale(0.5)
	}
	m.Observe(s)

	if v := m.Value(); math.Abs(v-3) > 1e-12 {
		t.Errorf("max drift = %v, want 3", v)
	}
}

func TestMomentumDeviation(t *testing.T) {
	m := NewMomentum()
	s := boundPair()
	m.Observe(s)
	if m.Value() != 0 {
		t.Fatalf("initial deviation = %v, want 0", m.Value())
	}

	s.Particles[0].Vel.X += 0.25
	m.Observe(s)
	if v := m.Value(); math.Abs(v-0.25) > 1e-15 {
		t.Errorf("deviation = %v, want 0.25", v)
	}
}

func TestAngularMomentumDeviation(t *testing.T) {
	m := NewAngularMomentum()
	s := boundPair()
	m.Observe(s)

	s.Particles[0].Vel.Y *= 2
	m.Observe(s)
	// extra L_z = r * dv = 0.5 * 0.7071...
	want := 0.5 * 0.7071067811865476
	if v := m.Value(); math.Abs(v-want) > 1e-15 {
		t.Errorf("deviation = %v, want %v", v, want)
	}
}

func TestEscapeFraction(t *testing.T) {
	m := NewEscape(2.0)
	s := boundPair()

	m.Observe(s)
	s.Particles[0].Pos.X = 5
	m.Observe(s)
	s.Particles[0].Pos.X = 0.5
	m.Observe(s)
	m.Observe(s)

	if v := m.Value(); v != 0.25 {
		t.Errorf("escape fraction = %v, want 0.25", v)
	}
}

func TestAttachAndCollect(t *testing.T) {
	eval := gravity.NewDirect(1, 0)
	s := boundPair()
	energy := NewEnergy(eval)
	drift := NewEnergyDrift(eval)
	Attach(s, energy, drift)

	s.Dt = 0.001
	s.Scheme = nbody.SchemeLeapfrog
	s.Register(nbody.SchemeLeapfrog, constStepper{})
	if err := s.Run(context.Background(), 0.01); err != nil {
		t.Fatalf("run: %v", err)
	}

	vals := Collect(energy, drift)
	if _, ok := vals["energy"]; !ok {
		t.Error("collect missing energy")
	}
	if _, ok := vals["energy_drift"]; !ok {
		t.Error("collect missing energy_drift")
	}
}

// constStepper advances time without touching particles.
type constStepper struct{}

func (constStepper) Part1(*nbody.Simulation) error { return nil }
func (constStepper) Part2(s *nbody.Simulation) error {
	s.T += s.Dt
	return nil
}
func (constStepper) Synchronize(*nbody.Simulation) error { return nil }
func (constStepper) Reset()                              {}
