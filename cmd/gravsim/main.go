package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sorenkp/gravsim/internal/analysis"
	"github.com/sorenkp/gravsim/internal/config"
	"github.com/sorenkp/gravsim/internal/experiment"
	"github.com/sorenkp/gravsim/internal/export"
	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/metrics"
	"github.com/sorenkp/gravsim/internal/nbody"
	"github.com/sorenkp/gravsim/internal/storage"
	"github.com/sorenkp/gravsim/internal/viz"
)

var (
	configFile   string
	preset       string
	dt           float64
	duration     float64
	scale        float64
	outputDir    string
	noSave       bool
	steps        int
	frameRate    int
	stepsFrame   int
	plotHeight   int
	svgFile      string
	perturbation float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "reversible gravitational N-body lab",
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "preset as system/variant, e.g. twobody/circular")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", 0, "override timestep")
	rootCmd.PersistentFlags().Float64Var(&duration, "duration", 0, "override run duration")
	rootCmd.PersistentFlags().Float64Var(&scale, "scale", 0, "override fixed-point scale")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a system and store the trajectory",
		RunE:  runRun,
	}
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "run store directory")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the run store")

	reverseCmd := &cobra.Command{
		Use:   "reverse",
		Short: "integrate forward, flip, and replay backward",
		RunE:  runReverse,
	}
	reverseCmd.Flags().IntVar(&steps, "steps", 0, "forward steps (default duration/dt)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot relative energy drift over a run",
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "graph height")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trajectory as an svg file")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run every scheme on the same system and compare drift",
		RunE:  runCompare,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent by twin trajectories",
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial displacement of the shadow trajectory")
	lyapunovCmd.Flags().IntVar(&steps, "steps", 0, "steps to integrate (default duration/dt)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step interactively in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")
	liveCmd.Flags().IntVar(&stepsFrame, "steps-per-frame", 10, "integration steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for system, group := range config.Presets {
				for variant, p := range group {
					fmt.Fprintf(w, "%s/%s\t%d bodies\tscheme=%s\tdt=%g\n",
						system, variant, len(p.Bodies), p.Scheme, p.Dt)
				}
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, reverseCmd, plotCmd, compareCmd, lyapunovCmd, liveCmd, presetsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case preset != "":
		system, variant, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be system/variant, got %q", preset)
		}
		c, ok := config.Preset(system, variant)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg = c
	default:
		c, ok := config.Preset("twobody", "circular")
		if !ok {
			return nil, fmt.Errorf("no default preset")
		}
		cfg = c
	}
	if dt != 0 {
		cfg.Dt = dt
	}
	if duration != 0 {
		cfg.Duration = duration
	}
	if scale != 0 {
		cfg.Scale = scale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, eval, _, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	drift := metrics.NewEnergyDrift(eval)
	mom := metrics.NewMomentum()
	angMom := metrics.NewAngularMomentum()
	metrics.Attach(sim, drift, mom, angMom)

	rec := &storage.Recorder{}
	if !noSave {
		sim.AddObserver(rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := sim.Run(ctx, cfg.Duration); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "scheme\t%s\n", sim.Scheme)
	fmt.Fprintf(w, "steps\t%d\n", sim.Steps())
	fmt.Fprintf(w, "time\t%.6f\n", sim.T)
	fmt.Fprintf(w, "energy drift\t%.3e\n", drift.Value())
	fmt.Fprintf(w, "momentum drift\t%.3e\n", mom.Value())
	fmt.Fprintf(w, "ang. momentum drift\t%.3e\n", angMom.Value())
	w.Flush()

	if noSave {
		return nil
	}
	out := cfg.Output
	if outputDir != "" {
		out = outputDir
	}
	store := storage.New(out)
	if err := store.Init(); err != nil {
		return err
	}
	id, err := store.Save(storage.RunMetadata{
		Scheme:    cfg.Scheme,
		Companion: cfg.Companion,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Scale:     cfg.Scale,
		G:         cfg.G,
		Softening: cfg.Softening,
		Bodies:    len(cfg.Bodies),
		Metrics:   metrics.Collect(drift, mom, angMom),
	}, rec.Frames)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", id)
	return nil
}

func runReverse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Scheme = "janus"
	sim, eval, janus, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	n := steps
	if n <= 0 {
		n = int(math.Abs(cfg.Duration/cfg.Dt) + 0.5)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := experiment.RoundTrip(ctx, sim, janus, eval, n)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "steps each way\t%d\n", res.Steps)
	fmt.Fprintf(w, "max position deviation\t%g\n", res.MaxPosDeviation)
	fmt.Fprintf(w, "max velocity deviation\t%g\n", res.MaxVelDeviation)
	fmt.Fprintf(w, "energy forward\t%.15g\n", res.EnergyForward)
	fmt.Fprintf(w, "energy return\t%.15g\n", res.EnergyReturn)
	if res.MaxPosDeviation == 0 && res.MaxVelDeviation == 0 {
		fmt.Fprintf(w, "round trip\texact\n")
	} else {
		fmt.Fprintf(w, "round trip\tINEXACT\n")
	}
	w.Flush()
	return nil
}

type driftSeries struct {
	eval    *gravity.Direct
	initial float64
	have    bool
	Samples []float64
}

func (d *driftSeries) OnStep(s *nbody.Simulation) {
	e := d.eval.Energy(s.Particles)
	if !d.have {
		d.initial = e
		d.have = true
	}
	v := 0.0
	if d.initial != 0 {
		v = math.Abs(e-d.initial) / math.Abs(d.initial)
	}
	d.Samples = append(d.Samples, v)
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, eval, _, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	series := &driftSeries{eval: eval}
	sim.AddObserver(series)
	rec := &storage.Recorder{}
	if svgFile != "" {
		sim.AddObserver(rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := sim.Run(ctx, cfg.Duration); err != nil {
		return err
	}
	fmt.Println(viz.DriftPlot(series.Samples, plotHeight))

	if svgFile != "" {
		if err := export.WriteTrajectorySVG(svgFile, rec.Frames, 800, 600); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	schemes := []nbody.Scheme{nbody.SchemeJanus, nbody.SchemeLeapfrog, nbody.SchemeRKF45}
	results, err := experiment.Compare(ctx, cfg, schemes)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "scheme\tsteps\tenergy drift\tfinal energy")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.15g\n", r.Scheme, r.Steps, r.EnergyDrift, r.FinalEnergy)
	}
	w.Flush()
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ref, _, _, err := experiment.Build(cfg)
	if err != nil {
		return err
	}
	shadow, _, _, err := experiment.Build(cfg)
	if err != nil {
		return err
	}
	analysis.Perturb(shadow, perturbation)

	n := steps
	if n <= 0 {
		n = int(math.Abs(cfg.Duration/cfg.Dt) + 0.5)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	lambda, err := analysis.Lyapunov(ctx, ref, shadow, n)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", n)
	fmt.Fprintf(w, "perturbation\t%g\n", perturbation)
	fmt.Fprintf(w, "largest exponent\t%.6g\n", lambda)
	if lambda > 0 {
		fmt.Fprintf(w, "regime\tchaotic (trajectories diverge)\n")
	} else {
		fmt.Fprintf(w, "regime\tregular\n")
	}
	w.Flush()
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, eval, _, err := experiment.Build(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(sim, eval, stepsFrame, frameRate)
}
