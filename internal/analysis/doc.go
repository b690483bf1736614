// Package analysis provides chaos diagnostics for N-body trajectories.
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.Lyapunov(ctx, a, b, steps)
//	if lambda > 0 {
//	    // neighboring trajectories diverge exponentially
//	}
package analysis
