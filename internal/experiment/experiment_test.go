package experiment

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/sorenkp/gravsim/internal/config"
	"github.com/sorenkp/gravsim/internal/nbody"
)

func circularConfig() *config.Config {
	cfg, ok := config.Preset("twobody", "circular")
	if !ok {
		panic("missing twobody/circular preset")
	}
	cfg.Duration = 1.0
	return cfg
}

func TestBuildFromConfig(t *testing.T) {
	g := NewWithT(t)

	s, eval, j, err := Build(circularConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.N()).To(Equal(2))
	g.Expect(s.Scheme).To(Equal(nbody.SchemeJanus))
	g.Expect(s.Dt).To(Equal(0.001))
	g.Expect(eval.G).To(Equal(1.0))
	g.Expect(j.Scale()).To(Equal(1e12))

	// every scheme selector must resolve
	for _, k := range []nbody.Scheme{nbody.SchemeJanus, nbody.SchemeLeapfrog, nbody.SchemeRKF45} {
		g.Expect(s.Integrator(k)).NotTo(BeNil())
	}
}

func TestBuildRejectsUnknownScheme(t *testing.T) {
	g := NewWithT(t)

	cfg := circularConfig()
	cfg.Scheme = "symplectic4"
	_, _, _, err := Build(cfg)
	g.Expect(err).To(MatchError(nbody.ErrUnknownScheme))
}

func TestRoundTripIsExact(t *testing.T) {
	g := NewWithT(t)

	s, eval, j, err := Build(circularConfig())
	g.Expect(err).NotTo(HaveOccurred())

	res, err := RoundTrip(context.Background(), s, j, eval, 500)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Steps).To(Equal(500))
	g.Expect(res.MaxPosDeviation).To(BeZero())
	g.Expect(res.MaxVelDeviation).To(BeZero())
	g.Expect(res.EnergyReturn).To(Equal(res.EnergyForward))
}

func TestRoundTripRejectsBadSteps(t *testing.T) {
	g := NewWithT(t)

	s, eval, j, err := Build(circularConfig())
	g.Expect(err).NotTo(HaveOccurred())

	_, err = RoundTrip(context.Background(), s, j, eval, 0)
	g.Expect(err).To(HaveOccurred())
}

func TestRoundTripHonorsCancellation(t *testing.T) {
	g := NewWithT(t)

	s, eval, j, err := Build(circularConfig())
	g.Expect(err).NotTo(HaveOccurred())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RoundTrip(ctx, s, j, eval, 100)
	g.Expect(err).To(MatchError(context.Canceled))
}

func TestCompareRanksSchemes(t *testing.T) {
	g := NewWithT(t)

	cfg := circularConfig()
	schemes := []nbody.Scheme{nbody.SchemeJanus, nbody.SchemeLeapfrog, nbody.SchemeRKF45}
	results, err := Compare(context.Background(), cfg, schemes)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))

	for i, r := range results {
		g.Expect(r.Scheme).To(Equal(schemes[i]))
		g.Expect(r.Steps).To(Equal(1000))
		g.Expect(r.EnergyDrift).To(BeNumerically("<", 1e-3))
		g.Expect(r.FinalEnergy).To(BeNumerically("~", -0.5, 1e-3))
	}
}
