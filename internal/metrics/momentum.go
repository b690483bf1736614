package metrics

import (
	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/nbody"
)

// Momentum tracks the maximum deviation of total linear momentum from its
// first observed value.
type Momentum struct {
	name    string
	initial nbody.Vec3
	maxDev  float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum_drift"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *nbody.Simulation) {
	p := gravity.Momentum(s.Particles)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	if dev := p.Sub(m.initial).Norm(); dev > m.maxDev {
		m.maxDev = dev
	}
}

func (m *Momentum) Value() float64 { return m.maxDev }

func (m *Momentum) Reset() {
	m.initial = nbody.Vec3{}
	m.maxDev = 0
	m.samples = 0
}

// AngularMomentum tracks the maximum deviation of total angular momentum
// about the origin.
type AngularMomentum struct {
	name    string
	initial nbody.Vec3
	maxDev  float64
	samples int
}

func NewAngularMomentum() *AngularMomentum {
	return &AngularMomentum{name: "angular_momentum_drift"}
}

func (m *AngularMomentum) Name() string { return m.name }

func (m *AngularMomentum) Observe(s *nbody.Simulation) {
	l := gravity.AngularMomentum(s.Particles)
	if m.samples == 0 {
		m.initial = l
	}
	m.samples++
	if dev := l.Sub(m.initial).Norm(); dev > m.maxDev {
		m.maxDev = dev
	}
}

func (m *AngularMomentum) Value() float64 { return m.maxDev }

func (m *AngularMomentum) Reset() {
	m.initial = nbody.Vec3{}
	m.maxDev = 0
	m.samples = 0
}
