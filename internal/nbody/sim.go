package nbody

import (
	"context"
	"fmt"
	"math"
)

// Simulation is the host context shared by every integration scheme: current
// time, signed timestep, particle array, run status and the active scheme
// selector. Schemes read the timestep and particle count and write time,
// status, positions and velocities.
type Simulation struct {
	T         float64
	Dt        float64
	Status    Status
	Scheme    Scheme
	Particles []Particle
	Force     Evaluator

	integrators map[Scheme]Integrator
	observers   []Observer
	steps       int
}

// New returns a Simulation using the given force evaluator. Integration
// schemes are registered separately with Register.
func New(force Evaluator) *Simulation {
	return &Simulation{
		Status:      StatusRunning,
		Force:       force,
		integrators: make(map[Scheme]Integrator),
	}
}

// Register binds an integrator instance to a scheme selector. Re-registering
// a selector replaces the previous instance.
func (s *Simulation) Register(k Scheme, ig Integrator) {
	s.integrators[k] = ig
}

// Integrator returns the instance registered for k, or nil.
func (s *Simulation) Integrator(k Scheme) Integrator {
	return s.integrators[k]
}

// AddObserver subscribes o to step notifications during Run.
func (s *Simulation) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// N returns the current particle count.
func (s *Simulation) N() int {
	return len(s.Particles)
}

// Steps returns the number of steps completed by Run and Step.
func (s *Simulation) Steps() int {
	return s.steps
}

// Step advances the simulation by one timestep using the active scheme.
// This is the host's generic "run one step" entry point: phase one, then
// phase two of the scheme's protocol.
func (s *Simulation) Step() error {
	ig := s.integrators[s.Scheme]
	if ig == nil {
		return fmt.Errorf("%w: %v", ErrUnknownScheme, s.Scheme)
	}
	if s.Force == nil {
		return ErrNoEvaluator
	}
	if s.Dt == 0 {
		return ErrZeroTimestep
	}
	if err := ig.Part1(s); err != nil {
		return err
	}
	if err := ig.Part2(s); err != nil {
		return err
	}
	s.steps++
	return nil
}

// Run steps the simulation until duration has elapsed or ctx is canceled.
// Observers are notified after each completed step. The run finishes with
// StatusFinished, or StatusDiverged if a step produced invalid state.
func (s *Simulation) Run(ctx context.Context, duration float64) error {
	if duration <= 0 {
		return fmt.Errorf("nbody: duration must be positive, got %f", duration)
	}
	if s.Dt == 0 {
		return ErrZeroTimestep
	}

	// negative dt replays backward for a positive duration
	steps := int(math.Abs(duration/s.Dt) + 0.5)
	s.Status = StatusRunning

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.Status = StatusPaused
			return ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			return &StepError{Step: i, Time: s.T, Wrapped: err}
		}
		if !s.valid() {
			s.Status = StatusDiverged
			return &StepError{Step: i, Time: s.T, Wrapped: ErrDiverged}
		}
		for _, o := range s.observers {
			o.OnStep(s)
		}
	}

	s.Status = StatusFinished
	return nil
}

func (s *Simulation) valid() bool {
	for i := range s.Particles {
		if !s.Particles[i].Pos.IsValid() || !s.Particles[i].Vel.IsValid() {
			return false
		}
	}
	return true
}

// Synchronize asks the active scheme to bring the particle array in line
// with its internal state.
func (s *Simulation) Synchronize() error {
	ig := s.integrators[s.Scheme]
	if ig == nil {
		return fmt.Errorf("%w: %v", ErrUnknownScheme, s.Scheme)
	}
	return ig.Synchronize(s)
}
