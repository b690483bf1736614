// Package export renders recorded trajectories to standalone SVG documents.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/sorenkp/gravsim/internal/storage"
)

var bodyColors = []string{
	"#00ff00", "#00bfff", "#ff6347", "#ffd700", "#da70d6", "#7fffd4",
}

// TrajectorySVG draws the xy-plane path of every body across the recorded
// frames as one polyline per body on a dark background.
func TrajectorySVG(frames []storage.Frame, width, height int) string {
	if len(frames) < 2 || len(frames[0].Particles) == 0 {
		return ""
	}

	minX, maxX := frames[0].Particles[0].Pos.X, frames[0].Particles[0].Pos.X
	minY, maxY := frames[0].Particles[0].Pos.Y, frames[0].Particles[0].Pos.Y
	for _, f := range frames {
		for _, p := range f.Particles {
			if p.Pos.X < minX {
				minX = p.Pos.X
			}
			if p.Pos.X > maxX {
				maxX = p.Pos.X
			}
			if p.Pos.Y < minY {
				minY = p.Pos.Y
			}
			if p.Pos.Y > maxY {
				maxY = p.Pos.Y
			}
		}
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	const margin = 10.0
	sx := (float64(width) - 2*margin) / spanX
	sy := (float64(height) - 2*margin) / spanY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for b := range frames[0].Particles {
		color := bodyColors[b%len(bodyColors)]
		fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-width="1" points="`, color)
		for _, f := range frames {
			p := f.Particles[b].Pos
			x := margin + (p.X-minX)*sx
			// svg y grows downward
			y := float64(height) - margin - (p.Y-minY)*sy
			fmt.Fprintf(&sb, "%.1f,%.1f ", x, y)
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTrajectorySVG renders the frames and writes the document to path.
func WriteTrajectorySVG(path string, frames []storage.Frame, width, height int) error {
	doc := TrajectorySVG(frames, width, height)
	if doc == "" {
		return fmt.Errorf("export: need at least two frames with bodies")
	}
	return os.WriteFile(path, []byte(doc), 0644)
}
