// Package viz renders simulation runs in the terminal.
package viz

import (
	"github.com/guptarohit/asciigraph"
)

// DriftPlot renders a relative energy drift series as an ASCII graph.
func DriftPlot(series []float64, height int) string {
	if len(series) == 0 {
		return "(no samples)"
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption("relative energy drift"),
	)
}

// SeriesPlot renders an arbitrary sampled quantity.
func SeriesPlot(series []float64, height int, caption string) string {
	if len(series) == 0 {
		return "(no samples)"
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
