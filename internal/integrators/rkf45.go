package integrators

import (
	"math"

	"github.com/sorenkp/gravsim/internal/nbody"
)

// Dormand-Prince coefficients (RKF45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// kin is one body's kinematic state; in derivative slices the pos field
// holds dPos/dt and the vel field dVel/dt.
type kin struct {
	pos, vel nbody.Vec3
}

// RKF45 is the variable-step scheme: a Dormand-Prince embedded pair that
// integrates exactly one host timestep per Step, splitting it into adaptive
// substeps when the error estimate demands it. The final substep is clamped
// so the step always lands exactly on t+Dt, which the Janus bootstrap probe
// relies on. Negative timesteps integrate backward.
type RKF45 struct {
	Tolerance float64
	MinStep   float64

	safety   float64
	minScale float64
	maxScale float64

	y, y5          []kin
	k1, k2, k3, k4 []kin
	k5, k6, k7     []kin
	ytmp           []kin
}

func NewRKF45() *RKF45 {
	return &RKF45{
		Tolerance: 1e-9,
		MinStep:   1e-12,
		safety:    0.9,
		minScale:  0.2,
		maxScale:  5.0,
	}
}

func (r *RKF45) ensureScratch(n int) {
	if len(r.y) == n {
		return
	}
	for _, p := range []*[]kin{&r.y, &r.y5, &r.k1, &r.k2, &r.k3, &r.k4, &r.k5, &r.k6, &r.k7, &r.ytmp} {
		*p = make([]kin, n)
	}
}

func (r *RKF45) derive(s *nbody.Simulation, y, dst []kin) error {
	for i := range s.Particles {
		s.Particles[i].Pos = y[i].pos
	}
	if err := s.Force.Accelerate(s.Particles, nbody.ExcludeNone); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = kin{pos: y[i].vel, vel: s.Particles[i].Acc}
	}
	return nil
}

// attempt computes one trial substep of size h into r.y5 and returns the
// scaled error estimate.
func (r *RKF45) attempt(s *nbody.Simulation, h float64) (float64, error) {
	n := len(r.y)

	if err := r.derive(s, r.y, r.k1); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		r.ytmp[i].pos = r.y[i].pos.Add(r.k1[i].pos.Scale(h * b21))
		r.ytmp[i].vel = r.y[i].vel.Add(r.k1[i].vel.Scale(h * b21))
	}
	if err := r.derive(s, r.ytmp, r.k2); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		r.ytmp[i].pos = r.y[i].pos.Add(r.k1[i].pos.Scale(h * b31)).Add(r.k2[i].pos.Scale(h * b32))
		r.ytmp[i].vel = r.y[i].vel.Add(r.k1[i].vel.Scale(h * b31)).Add(r.k2[i].vel.Scale(h * b32))
	}
	if err := r.derive(s, r.ytmp, r.k3); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		r.ytmp[i].pos = r.y[i].pos.Add(r.k1[i].pos.Scale(h * b41)).Add(r.k2[i].pos.Scale(h * b42)).Add(r.k3[i].pos.Scale(h * b43))
		r.ytmp[i].vel = r.y[i].vel.Add(r.k1[i].vel.Scale(h * b41)).Add(r.k2[i].vel.Scale(h * b42)).Add(r.k3[i].vel.Scale(h * b43))
	}
	if err := r.derive(s, r.ytmp, r.k4); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		r.ytmp[i].pos = r.y[i].pos.Add(r.k1[i].pos.Scale(h * b51)).Add(r.k2[i].pos.Scale(h * b52)).Add(r.k3[i].pos.Scale(h * b53)).Add(r.k4[i].pos.Scale(h * b54))
		r.ytmp[i].vel = r.y[i].vel.Add(r.k1[i].vel.Scale(h * b51)).Add(r.k2[i].vel.Scale(h * b52)).Add(r.k3[i].vel.Scale(h * b53)).Add(r.k4[i].vel.Scale(h * b54))
	}
	if err := r.derive(s, r.ytmp, r.k5); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		r.ytmp[i].pos = r.y[i].pos.Add(r.k1[i].pos.Scale(h * b61)).Add(r.k2[i].pos.Scale(h * b62)).Add(r.k3[i].pos.Scale(h * b63)).Add(r.k4[i].pos.Scale(h * b64)).Add(r.k5[i].pos.Scale(h * b65))
		r.ytmp[i].vel = r.y[i].vel.Add(r.k1[i].vel.Scale(h * b61)).Add(r.k2[i].vel.Scale(h * b62)).Add(r.k3[i].vel.Scale(h * b63)).Add(r.k4[i].vel.Scale(h * b64)).Add(r.k5[i].vel.Scale(h * b65))
	}
	if err := r.derive(s, r.ytmp, r.k6); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		r.y5[i].pos = r.y[i].pos.Add(r.k1[i].pos.Scale(h * c1)).Add(r.k3[i].pos.Scale(h * c3)).Add(r.k4[i].pos.Scale(h * c4)).Add(r.k5[i].pos.Scale(h * c5)).Add(r.k6[i].pos.Scale(h * c6))
		r.y5[i].vel = r.y[i].vel.Add(r.k1[i].vel.Scale(h * c1)).Add(r.k3[i].vel.Scale(h * c3)).Add(r.k4[i].vel.Scale(h * c4)).Add(r.k5[i].vel.Scale(h * c5)).Add(r.k6[i].vel.Scale(h * c6))
	}
	if err := r.derive(s, r.y5, r.k7); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		ep := r.k1[i].pos.Scale(dc1).Add(r.k3[i].pos.Scale(dc3)).Add(r.k4[i].pos.Scale(dc4)).Add(r.k5[i].pos.Scale(dc5)).Add(r.k6[i].pos.Scale(dc6)).Add(r.k7[i].pos.Scale(dc7))
		ev := r.k1[i].vel.Scale(dc1).Add(r.k3[i].vel.Scale(dc3)).Add(r.k4[i].vel.Scale(dc4)).Add(r.k5[i].vel.Scale(dc5)).Add(r.k6[i].vel.Scale(dc6)).Add(r.k7[i].vel.Scale(dc7))
		sum += ep.Dot(ep) + ev.Dot(ev)
	}
	return math.Abs(h) * math.Sqrt(sum/float64(6*n)), nil
}

func clampScale(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// Part1 integrates the particles through exactly one host timestep.
func (r *RKF45) Part1(s *nbody.Simulation) error {
	n := s.N()
	r.ensureScratch(n)
	for i := range s.Particles {
		r.y[i] = kin{pos: s.Particles[i].Pos, vel: s.Particles[i].Vel}
	}

	target := s.Dt
	done := 0.0
	h := target
	for {
		remaining := target - done
		if remaining == 0 {
			break
		}
		last := math.Abs(h) >= math.Abs(remaining)
		if last {
			h = remaining
		}

		errEst, err := r.attempt(s, h)
		if err != nil {
			return err
		}

		if errEst <= r.Tolerance || math.Abs(h) <= r.MinStep {
			copy(r.y, r.y5)
			if last {
				done = target
			} else {
				done += h
			}
			if errEst > 0 {
				h *= clampScale(r.safety*math.Pow(r.Tolerance/errEst, 0.2), r.minScale, r.maxScale)
			} else {
				h *= r.maxScale
			}
		} else {
			h *= clampScale(r.safety*math.Pow(r.Tolerance/errEst, 0.25), r.minScale, 1.0)
			if math.Abs(h) < r.MinStep {
				return nbody.ErrStepUnderflow
			}
		}
	}

	for i := range s.Particles {
		s.Particles[i].Pos = r.y[i].pos
		s.Particles[i].Vel = r.y[i].vel
	}
	s.T += target
	return nil
}

func (r *RKF45) Part2(*nbody.Simulation) error { return nil }

func (r *RKF45) Synchronize(*nbody.Simulation) error { return nil }

func (r *RKF45) Reset() {
	for _, p := range []*[]kin{&r.y, &r.y5, &r.k1, &r.k2, &r.k3, &r.k4, &r.k5, &r.k6, &r.k7, &r.ytmp} {
		*p = nil
	}
}
