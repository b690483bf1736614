package metrics

import (
	"github.com/sorenkp/gravsim/internal/nbody"
)

// Escape counts observations in which any body strayed beyond a radius from
// the origin, a cheap ejection detector for bound systems.
type Escape struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewEscape(radius float64) *Escape {
	return &Escape{name: "escape", radius: radius}
}

func (e *Escape) Name() string { return e.name }

func (e *Escape) Observe(s *nbody.Simulation) {
	e.samples++
	r2 := e.radius * e.radius
	for i := range s.Particles {
		if p := s.Particles[i].Pos; p.Dot(p) > r2 {
			e.violations++
			return
		}
	}
}

// Value returns the fraction of observations with an escaped body.
func (e *Escape) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.violations) / float64(e.samples)
}

func (e *Escape) Reset() {
	e.violations = 0
	e.samples = 0
}
