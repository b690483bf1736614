// Package nbody provides the core simulation context for gravitational
// N-body runs.
//
// The package defines the fundamental types shared by every scheme:
//
//   - [Particle]: position, velocity, acceleration and mass of one body
//   - [Evaluator]: force evaluator writing per-body accelerations
//   - [Integrator]: the generic two-phase stepping protocol
//   - [Simulation]: time, timestep, particles and the active scheme
//
// # Example
//
//	sim := nbody.New(gravity.NewDirect(1.0, 0))
//	sim.Dt = 0.01
//	sim.Particles = bodies
//	sim.Register(nbody.SchemeJanus, integrators.NewJanus(1e6))
//	sim.Scheme = nbody.SchemeJanus
//	err := sim.Run(ctx, 10.0)
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. All stepping, reconfiguration
// and buffer reallocation must be serialized by the caller; one instance
// belongs to one goroutine.
package nbody
