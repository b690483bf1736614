package integrators

import (
	"github.com/sorenkp/gravsim/internal/nbody"
)

// DefaultScale is the lattice resolution (quanta per unit length) used by
// NewJanus when the configuration does not override it.
const DefaultScale = 1e16

// latticePoint is one body's position quantized onto the integer lattice.
// Velocities are never stored in fixed point; they are reconstructed from
// position generations by central difference.
type latticePoint struct {
	X, Y, Z int64
}

// Janus is a time-symmetric leapfrog scheme on an integer lattice. Positions
// live on a grid with quantum 1/scale, where addition is exactly associative
// and invertible, so a trajectory stepped forward, flipped and stepped again
// retraces itself bit for bit. The scheme keeps four position generations
// and derives velocities from the central difference of the outer two.
type Janus struct {
	scale     float64
	companion nbody.Scheme

	allocatedN int
	gens       [4][]latticePoint
	// generation roles as indices into gens
	prev, curr, next, spare int
}

// NewJanus returns a Janus scheme with the given lattice scale. The scale is
// fixed for the lifetime of the instance; choose it together with the
// timestep so per-step displacements stay well inside the int64 range
// (config.Validate checks this).
func NewJanus(scale float64) *Janus {
	return &Janus{
		scale:     scale,
		companion: nbody.SchemeRKF45,
		prev:      0, curr: 1, next: 2, spare: 3,
	}
}

// SetCompanion selects the scheme used for the one-shot bootstrap probe.
func (j *Janus) SetCompanion(k nbody.Scheme) {
	j.companion = k
}

// Scale returns the lattice quanta per unit length.
func (j *Janus) Scale() float64 {
	return j.scale
}

// Allocated returns the particle count the generation buffers are sized
// for, zero before the first bootstrap.
func (j *Janus) Allocated() int {
	return j.allocatedN
}

func encode(dst []latticePoint, ps []nbody.Particle, scale float64) {
	for i := range ps {
		dst[i].X = int64(ps[i].Pos.X * scale)
		dst[i].Y = int64(ps[i].Pos.Y * scale)
		dst[i].Z = int64(ps[i].Pos.Z * scale)
	}
}

func decode(ps []nbody.Particle, src []latticePoint, scale float64) {
	for i := range ps {
		ps[i].Pos.X = float64(src[i].X) / scale
		ps[i].Pos.Y = float64(src[i].Y) / scale
		ps[i].Pos.Z = float64(src[i].Z) / scale
	}
}

// stepAxis advances one lattice coordinate. The -prev + 2*curr part is pure
// integer cancellation; the forcing term is truncated exactly once and the
// sum is accumulated at 128-bit width before narrowing to storage width.
func stepAxis(prev, curr int64, forcing float64) int64 {
	c := int128FromInt64(curr)
	acc := c.add(c)
	acc = acc.add(int128FromInt64(prev).neg())
	acc = acc.add(int128FromFloat(forcing))
	return acc.low64()
}

// bootstrap seeds the two history generations the central-difference update
// needs: the current state quantized into curr, and the state one timestep
// in the past, obtained from a single probe step of the companion scheme
// with the timestep sign flipped. The probe runs against a snapshot of the
// host context and leaves no side effect behind.
func (j *Janus) bootstrap(s *nbody.Simulation) error {
	if j.scale <= 0 {
		return nbody.ErrBadScale
	}
	if j.companion == s.Scheme {
		return nbody.ErrSelfCompanion
	}

	n := s.N()
	for g := range j.gens {
		j.gens[g] = make([]latticePoint, n)
	}
	j.prev, j.curr, j.next, j.spare = 0, 1, 2, 3

	snap := s.Snapshot()
	defer s.Restore(snap)

	encode(j.gens[j.curr], s.Particles, j.scale)

	s.Scheme = j.companion
	s.Dt = -snap.Dt
	s.Status = nbody.StatusRunning
	if err := s.Step(); err != nil {
		return err
	}
	encode(j.gens[j.prev], s.Particles, j.scale)

	j.allocatedN = n
	return nil
}

// Part1 performs the whole update for one timestep: decode the current
// generation into the host positions, evaluate forces with no exclusions,
// advance the lattice by the discrete Störmer-Verlet law, reconstruct
// velocities by central difference and rotate the generations. Host time
// advances by Dt. A particle-count change since the last step triggers a
// re-bootstrap first.
func (j *Janus) Part1(s *nbody.Simulation) error {
	if j.allocatedN != s.N() {
		if err := j.bootstrap(s); err != nil {
			return err
		}
	}

	prev, curr, next := j.gens[j.prev], j.gens[j.curr], j.gens[j.next]
	decode(s.Particles, curr, j.scale)

	if err := s.Force.Accelerate(s.Particles, nbody.ExcludeNone); err != nil {
		return err
	}

	dt := s.Dt
	forcing := j.scale * dt * dt
	for i := range s.Particles {
		a := s.Particles[i].Acc
		next[i].X = stepAxis(prev[i].X, curr[i].X, forcing*a.X)
		next[i].Y = stepAxis(prev[i].Y, curr[i].Y, forcing*a.Y)
		next[i].Z = stepAxis(prev[i].Z, curr[i].Z, forcing*a.Z)
	}

	inv := 1.0 / (2 * dt * j.scale)
	for i := range s.Particles {
		s.Particles[i].Vel.X = float64(next[i].X-prev[i].X) * inv
		s.Particles[i].Vel.Y = float64(next[i].Y-prev[i].Y) * inv
		s.Particles[i].Vel.Z = float64(next[i].Z-prev[i].Z) * inv
	}

	j.prev, j.curr, j.next, j.spare = j.curr, j.next, j.spare, j.prev
	s.T += dt
	return nil
}

// Part2 is a protocol no-op: the entire update happens in Part1.
func (j *Janus) Part2(*nbody.Simulation) error {
	return nil
}

// Synchronize is a protocol no-op: positions and velocities are already
// written every step.
func (j *Janus) Synchronize(*nbody.Simulation) error {
	return nil
}

// Flip exchanges the previous and current generation roles. Negating the
// host timestep and stepping again then replays the trajectory exactly
// backward, generation by generation.
func (j *Janus) Flip() error {
	if j.allocatedN == 0 {
		return nbody.ErrNotBootstrapped
	}
	j.prev, j.curr = j.curr, j.prev
	return nil
}

// Reset releases the generation buffers and returns the instance to its
// unbootstrapped state. Idempotent.
func (j *Janus) Reset() {
	j.allocatedN = 0
	for g := range j.gens {
		j.gens[g] = nil
	}
	j.prev, j.curr, j.next, j.spare = 0, 1, 2, 3
}

// Positions decodes the newest generation, the lattice state at the
// simulation's current time. The particle array written by Part1 trails it
// by one timestep.
func (j *Janus) Positions() []nbody.Vec3 {
	curr := j.gens[j.curr]
	out := make([]nbody.Vec3, len(curr))
	for i := range curr {
		out[i] = nbody.Vec3{
			X: float64(curr[i].X) / j.scale,
			Y: float64(curr[i].Y) / j.scale,
			Z: float64(curr[i].Z) / j.scale,
		}
	}
	return out
}
