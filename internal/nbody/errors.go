package nbody

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnknownScheme indicates no integrator is registered for the
	// active scheme selector.
	ErrUnknownScheme = errors.New("nbody: unknown integration scheme")

	// ErrNoEvaluator indicates the simulation has no force evaluator.
	ErrNoEvaluator = errors.New("nbody: no force evaluator configured")

	// ErrZeroTimestep indicates a step was requested with dt == 0.
	ErrZeroTimestep = errors.New("nbody: timestep is zero")

	// ErrBadScale indicates a non-positive fixed-point scale.
	ErrBadScale = errors.New("nbody: fixed-point scale must be positive")

	// ErrNotBootstrapped indicates an operation requiring populated
	// generation buffers was called before any step.
	ErrNotBootstrapped = errors.New("nbody: integrator not bootstrapped")

	// ErrSelfCompanion indicates a scheme was configured as its own
	// bootstrap companion.
	ErrSelfCompanion = errors.New("nbody: scheme cannot bootstrap from itself")

	// ErrStepUnderflow indicates an adaptive timestep collapsed below
	// its minimum.
	ErrStepUnderflow = errors.New("nbody: adaptive timestep below minimum")

	// ErrDiverged indicates the particle state contains NaN or Inf.
	ErrDiverged = errors.New("nbody: particle state diverged (NaN or Inf)")
)

// StepError wraps an error with the step and time at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("nbody: step %d at t=%g: %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
