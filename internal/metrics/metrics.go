// Package metrics provides conserved-quantity observers for simulation runs.
package metrics

import "github.com/sorenkp/gravsim/internal/nbody"

// Metric accumulates a scalar over the course of a run.
type Metric interface {
	Name() string
	Observe(s *nbody.Simulation)
	Value() float64
	Reset()
}

type observer struct {
	m Metric
}

func (o observer) OnStep(s *nbody.Simulation) {
	o.m.Observe(s)
}

// Attach subscribes each metric to the simulation's step notifications.
func Attach(s *nbody.Simulation, ms ...Metric) {
	for _, m := range ms {
		s.AddObserver(observer{m})
	}
}

// Collect returns the current value of each metric keyed by name.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
