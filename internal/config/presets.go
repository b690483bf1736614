package config

// Presets are ready-made scenarios, keyed by system then variant.
var Presets = map[string]map[string]*Config{
	"twobody": {
		"circular": {
			Scheme: "janus", Companion: "rkf45", Dt: 0.001, Duration: 50.0,
			Scale: 1e12, G: 1.0, Tolerance: 1e-10,
			Bodies: []Body{
				{Mass: 1.0, Pos: [3]float64{-0.5, 0, 0}, Vel: [3]float64{0, -0.7071067811865476, 0}},
				{Mass: 1.0, Pos: [3]float64{0.5, 0, 0}, Vel: [3]float64{0, 0.7071067811865476, 0}},
			},
		},
		"eccentric": {
			Scheme: "janus", Companion: "rkf45", Dt: 0.0005, Duration: 50.0,
			Scale: 1e12, G: 1.0, Tolerance: 1e-10,
			Bodies: []Body{
				{Mass: 1.0, Pos: [3]float64{-0.5, 0, 0}, Vel: [3]float64{0, -0.35, 0}},
				{Mass: 1.0, Pos: [3]float64{0.5, 0, 0}, Vel: [3]float64{0, 0.35, 0}},
			},
		},
	},
	"threebody": {
		"figure8": {
			Scheme: "janus", Companion: "rkf45", Dt: 0.001, Duration: 30.0,
			Scale: 1e12, G: 1.0, Tolerance: 1e-10,
			Bodies: []Body{
				{Mass: 1.0, Pos: [3]float64{0.97000436, -0.24308753, 0}, Vel: [3]float64{0.466203685, 0.43236573, 0}},
				{Mass: 1.0, Pos: [3]float64{-0.97000436, 0.24308753, 0}, Vel: [3]float64{0.466203685, 0.43236573, 0}},
				{Mass: 1.0, Pos: [3]float64{0, 0, 0}, Vel: [3]float64{-0.93240737, -0.86473146, 0}},
			},
		},
	},
	"freeflight": {
		"single": {
			Scheme: "janus", Companion: "leapfrog", Dt: 0.01, Duration: 1.0,
			Scale: 1e6, G: 0.0,
			Bodies: []Body{
				{Mass: 1.0, Pos: [3]float64{1, 0, 0}, Vel: [3]float64{0, 1, 0}},
			},
		},
	},
}

// Preset returns the named preset as a fresh config with defaults filled in.
func Preset(system, variant string) (*Config, bool) {
	group, ok := Presets[system]
	if !ok {
		return nil, false
	}
	p, ok := group[variant]
	if !ok {
		return nil, false
	}
	cfg := *p
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	bodies := make([]Body, len(p.Bodies))
	copy(bodies, p.Bodies)
	cfg.Bodies = bodies
	return &cfg, true
}
