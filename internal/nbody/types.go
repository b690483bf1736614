package nbody

import "math"

// Vec3 is a Cartesian 3-vector.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Particle is one body of the simulation. Acc is written by the force
// evaluator, Pos and Vel by the active integration scheme.
type Particle struct {
	Pos  Vec3
	Vel  Vec3
	Acc  Vec3
	Mass float64
}

// Scheme selects the active integration scheme of a simulation.
type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeJanus
	SchemeLeapfrog
	SchemeRKF45
)

func (s Scheme) String() string {
	switch s {
	case SchemeJanus:
		return "janus"
	case SchemeLeapfrog:
		return "leapfrog"
	case SchemeRKF45:
		return "rkf45"
	default:
		return "none"
	}
}

// ParseScheme maps a configuration name to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "janus":
		return SchemeJanus, nil
	case "leapfrog":
		return SchemeLeapfrog, nil
	case "rkf45":
		return SchemeRKF45, nil
	}
	return SchemeNone, ErrUnknownScheme
}

// Status reports the run state of a simulation.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusFinished
	StatusDiverged
)

func (st Status) String() string {
	switch st {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusFinished:
		return "finished"
	case StatusDiverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Exclusion names a set of gravitational interaction terms the caller wants
// skipped during force evaluation.
type Exclusion int

const (
	// ExcludeNone evaluates every pairwise interaction.
	ExcludeNone Exclusion = iota
	// ExcludePrimary skips every term involving body 0.
	ExcludePrimary
)

// Evaluator computes per-body accelerations from current positions,
// writing them into each particle's Acc field.
type Evaluator interface {
	Accelerate(ps []Particle, excl Exclusion) error
}

// Integrator is the generic two-phase stepping protocol. A scheme performs
// its update across Part1 and Part2; schemes that do the whole update in one
// phase leave the other a no-op. Synchronize brings any internal state in
// line with the particle array for schemes that keep one; Reset releases all
// internal buffers, returning the scheme to its unbootstrapped state.
type Integrator interface {
	Part1(s *Simulation) error
	Part2(s *Simulation) error
	Synchronize(s *Simulation) error
	Reset()
}

// Observer is notified after every completed step of a Run.
type Observer interface {
	OnStep(s *Simulation)
}
