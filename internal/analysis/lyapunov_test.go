package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/integrators"
	"github.com/sorenkp/gravsim/internal/nbody"
)

func freePair(vx float64) *nbody.Simulation {
	s := nbody.New(gravity.NewDirect(0, 0))
	s.Particles = []nbody.Particle{{Vel: nbody.Vec3{X: vx}, Mass: 1}}
	s.Dt = 0.01
	s.Scheme = nbody.SchemeLeapfrog
	s.Register(nbody.SchemeLeapfrog, integrators.NewLeapfrog())
	return s
}

func TestLyapunovZeroForFreeMotion(t *testing.T) {
	ref := freePair(1)
	shadow := freePair(1)
	Perturb(shadow, 1e-8)

	lambda, err := Lyapunov(context.Background(), ref, shadow, 500)
	if err != nil {
		t.Fatal(err)
	}
	// constant-velocity trajectories keep their separation up to
	// rounding of the displaced positions
	if math.Abs(lambda) > 1e-6 {
		t.Errorf("lambda = %g for free motion, want 0", lambda)
	}
}

func TestLyapunovPositiveForDivergingOrbits(t *testing.T) {
	mk := func() *nbody.Simulation {
		s := nbody.New(gravity.NewDirect(1, 0))
		s.Particles = []nbody.Particle{
			{Pos: nbody.Vec3{X: 0.5}, Vel: nbody.Vec3{Y: 0.35}, Mass: 1},
			{Pos: nbody.Vec3{X: -0.5}, Vel: nbody.Vec3{Y: -0.35}, Mass: 1},
		}
		s.Dt = 0.001
		s.Scheme = nbody.SchemeLeapfrog
		s.Register(nbody.SchemeLeapfrog, integrators.NewLeapfrog())
		return s
	}
	ref := mk()
	shadow := mk()
	Perturb(shadow, 1e-6)

	lambda, err := Lyapunov(context.Background(), ref, shadow, 5000)
	if err != nil {
		t.Fatal(err)
	}
	// eccentric orbits drift apart in phase
	if lambda <= 0 {
		t.Errorf("lambda = %g for perturbed eccentric orbit, want positive", lambda)
	}
}

func TestLyapunovGuards(t *testing.T) {
	ref := freePair(1)
	if _, err := Lyapunov(context.Background(), ref, freePair(1), 10); err == nil {
		t.Error("want error for unperturbed shadow")
	}

	shadow := nbody.New(gravity.NewDirect(0, 0))
	shadow.Particles = nil
	if _, err := Lyapunov(context.Background(), ref, shadow, 10); err == nil {
		t.Error("want error for mismatched body counts")
	}
}

func TestLyapunovHonorsCancellation(t *testing.T) {
	ref := freePair(1)
	shadow := freePair(1)
	Perturb(shadow, 1e-8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Lyapunov(ctx, ref, shadow, 10); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
