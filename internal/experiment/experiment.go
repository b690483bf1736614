package experiment

import (
	"context"
	"fmt"

	"github.com/sorenkp/gravsim/internal/config"
	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/integrators"
	"github.com/sorenkp/gravsim/internal/metrics"
	"github.com/sorenkp/gravsim/internal/nbody"
)

// Build assembles a simulation from a validated configuration: evaluator,
// particle array and one registered instance of every scheme. The returned
// Janus instance is the one bound to the simulation, for flip access.
func Build(cfg *config.Config) (*nbody.Simulation, *gravity.Direct, *integrators.Janus, error) {
	scheme, err := nbody.ParseScheme(cfg.Scheme)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("experiment: scheme %q: %w", cfg.Scheme, err)
	}

	eval := gravity.NewDirect(cfg.G, cfg.Softening)
	s := nbody.New(eval)
	s.Particles = cfg.Particles()
	s.Dt = cfg.Dt
	s.Scheme = scheme

	j := integrators.NewJanus(cfg.Scale)
	if cfg.Companion != "" {
		k, err := nbody.ParseScheme(cfg.Companion)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("experiment: companion %q: %w", cfg.Companion, err)
		}
		j.SetCompanion(k)
	}

	r := integrators.NewRKF45()
	if cfg.Tolerance > 0 {
		r.Tolerance = cfg.Tolerance
	}

	s.Register(nbody.SchemeJanus, j)
	s.Register(nbody.SchemeLeapfrog, integrators.NewLeapfrog())
	s.Register(nbody.SchemeRKF45, r)
	return s, eval, j, nil
}

// SchemeResult is one row of a comparison study.
type SchemeResult struct {
	Scheme      nbody.Scheme
	Steps       int
	EnergyDrift float64
	FinalEnergy float64
}

// Compare runs the configured system once under each given scheme from
// identical initial conditions and reports the energy drift of each.
func Compare(ctx context.Context, cfg *config.Config, schemes []nbody.Scheme) ([]SchemeResult, error) {
	results := make([]SchemeResult, 0, len(schemes))
	for _, k := range schemes {
		s, eval, _, err := Build(cfg)
		if err != nil {
			return nil, err
		}
		s.Scheme = k

		drift := metrics.NewEnergyDrift(eval)
		metrics.Attach(s, drift)

		if err := s.Run(ctx, cfg.Duration); err != nil {
			return nil, fmt.Errorf("experiment: %v run: %w", k, err)
		}
		results = append(results, SchemeResult{
			Scheme:      k,
			Steps:       s.Steps(),
			EnergyDrift: drift.Value(),
			FinalEnergy: eval.Energy(s.Particles),
		})
	}
	return results, nil
}
