package nbody

// Snapshot captures the externally visible host context: time, timestep,
// status, scheme selector and a deep copy of the particle array. It exists
// for probe steps that must run a scheme in isolation and then discard every
// side effect.
type Snapshot struct {
	T         float64
	Dt        float64
	Status    Status
	Scheme    Scheme
	Particles []Particle

	steps int
}

// Snapshot returns a copy of the current context.
func (s *Simulation) Snapshot() Snapshot {
	ps := make([]Particle, len(s.Particles))
	copy(ps, s.Particles)
	return Snapshot{
		T:         s.T,
		Dt:        s.Dt,
		Status:    s.Status,
		Scheme:    s.Scheme,
		Particles: ps,
		steps:     s.steps,
	}
}

// Restore overwrites the context with a previously taken snapshot. The
// particle array is restored in place when the count matches, so slices held
// by the caller stay valid.
func (s *Simulation) Restore(snap Snapshot) {
	s.T = snap.T
	s.Dt = snap.Dt
	s.Status = snap.Status
	s.Scheme = snap.Scheme
	s.steps = snap.steps
	if len(s.Particles) == len(snap.Particles) {
		copy(s.Particles, snap.Particles)
	} else {
		ps := make([]Particle, len(snap.Particles))
		copy(ps, snap.Particles)
		s.Particles = ps
	}
}
