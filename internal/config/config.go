// Package config loads and validates simulation run configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sorenkp/gravsim/internal/nbody"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultScale     = 1e6
	DefaultG         = 1.0
	DefaultTolerance = 1e-9
	DefaultOutput    = "runs"
)

// safeSpan keeps two bits of headroom below the int64 range so a per-step
// forcing term cannot push a coordinate past storage width.
var safeSpan = math.Ldexp(1, 62)

type Body struct {
	Mass float64    `yaml:"mass"`
	Pos  [3]float64 `yaml:"pos"`
	Vel  [3]float64 `yaml:"vel"`
}

type Config struct {
	Scheme    string  `yaml:"scheme"`
	Companion string  `yaml:"companion"`
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	Scale     float64 `yaml:"scale"`
	G         float64 `yaml:"g"`
	Softening float64 `yaml:"softening"`
	Tolerance float64 `yaml:"tolerance"`
	Output    string  `yaml:"output"`
	Bodies    []Body  `yaml:"bodies"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:    "janus",
		Companion: "rkf45",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Scale:     DefaultScale,
		G:         DefaultG,
		Tolerance: DefaultTolerance,
		Output:    DefaultOutput,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports configuration errors before any buffer exists, including
// the fixed-point range constraint: every coordinate reachable within the
// run must stay inside storage width at the configured scale, since the
// integrator corrupts silently rather than failing when it overflows.
func (c *Config) Validate() error {
	if c.Dt == 0 {
		return errors.New("config: dt must be non-zero")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if len(c.Bodies) == 0 {
		return errors.New("config: at least one body required")
	}
	for i, b := range c.Bodies {
		if b.Mass < 0 {
			return fmt.Errorf("config: body %d has negative mass", i)
		}
	}
	if _, err := nbody.ParseScheme(c.Scheme); err != nil {
		return fmt.Errorf("config: scheme %q: %w", c.Scheme, err)
	}
	if c.Companion != "" {
		k, err := nbody.ParseScheme(c.Companion)
		if err != nil {
			return fmt.Errorf("config: companion %q: %w", c.Companion, err)
		}
		if c.Scheme == "janus" && k == nbody.SchemeJanus {
			return nbody.ErrSelfCompanion
		}
	}

	if c.Scheme == "janus" {
		if c.Scale <= 0 {
			return nbody.ErrBadScale
		}
		if span := c.latticeSpan(); span >= safeSpan {
			return fmt.Errorf("config: scale %g puts reachable coordinates at %g lattice units, beyond the fixed-point range; lower scale or dt",
				c.Scale, span)
		}
	}
	return nil
}

// latticeSpan estimates the largest lattice coordinate the run can reach:
// initial extent plus ballistic travel over the full duration.
func (c *Config) latticeSpan() float64 {
	reach := 0.0
	for _, b := range c.Bodies {
		for ax := 0; ax < 3; ax++ {
			r := math.Abs(b.Pos[ax]) + math.Abs(b.Vel[ax])*c.Duration
			if r > reach {
				reach = r
			}
		}
	}
	return reach * c.Scale
}

// Particles converts the configured body list into the simulation's
// particle array.
func (c *Config) Particles() []nbody.Particle {
	ps := make([]nbody.Particle, len(c.Bodies))
	for i, b := range c.Bodies {
		ps[i] = nbody.Particle{
			Mass: b.Mass,
			Pos:  nbody.Vec3{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]},
			Vel:  nbody.Vec3{X: b.Vel[0], Y: b.Vel[1], Z: b.Vel[2]},
		}
	}
	return ps
}
