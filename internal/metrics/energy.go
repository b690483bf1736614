package metrics

import (
	"math"

	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/nbody"
)

// Energy tracks the mean total mechanical energy over a run.
type Energy struct {
	name    string
	eval    *gravity.Direct
	samples int
	total   float64
}

func NewEnergy(eval *gravity.Direct) *Energy {
	return &Energy{name: "energy", eval: eval}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *nbody.Simulation) {
	e.total += e.eval.Energy(s.Particles)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative deviation from the energy at the
// first observed step.
type EnergyDrift struct {
	name     string
	eval     *gravity.Direct
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(eval *gravity.Direct) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", eval: eval}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *nbody.Simulation) {
	energy := e.eval.Energy(s.Particles)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
