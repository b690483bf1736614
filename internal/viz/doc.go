// Package viz renders simulation runs in the terminal.
//
// Two surfaces are provided:
//
//   - [DriftPlot] and [SeriesPlot]: one-shot ASCII graphs of sampled
//     quantities, for command output
//   - [Model]: an interactive Bubble Tea view that steps a simulation in
//     real time, showing conserved-quantity drift and an orbit trail
//     canvas
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	C     - Clear orbit trails
//	Q     - Quit
package viz
