package viz

import (
	"strings"
	"testing"

	"github.com/sorenkp/gravsim/internal/nbody"
)

func TestOrbitCanvasPlotsWithinBounds(t *testing.T) {
	c := NewOrbitCanvas(10, 4, 1.0)
	c.Plot([]nbody.Particle{
		{Pos: nbody.Vec3{X: 0, Y: 0}},
		{Pos: nbody.Vec3{X: 0.9, Y: 0.9}},
		{Pos: nbody.Vec3{X: -0.9, Y: -0.9}},
	})

	out := c.String()
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("%d lines, want 4", lines)
	}
	lit := 0
	for _, r := range out {
		if r > 0x2800 && r <= 0x28ff {
			lit++
		}
	}
	if lit != 3 {
		t.Errorf("%d cells lit, want 3", lit)
	}
}

func TestOrbitCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewOrbitCanvas(10, 4, 1.0)
	c.Plot([]nbody.Particle{
		{Pos: nbody.Vec3{X: 5}},
		{Pos: nbody.Vec3{Y: -5}},
	})
	for _, r := range c.String() {
		if r > 0x2800 && r <= 0x28ff {
			t.Fatal("out-of-range position was plotted")
		}
	}
}

func TestOrbitCanvasAccumulatesTrails(t *testing.T) {
	c := NewOrbitCanvas(20, 5, 1.0)
	for i := 0; i < 10; i++ {
		x := -0.9 + 0.18*float64(i)
		c.Plot([]nbody.Particle{{Pos: nbody.Vec3{X: x}}})
	}
	lit := 0
	for _, r := range c.String() {
		if r > 0x2800 && r <= 0x28ff {
			lit++
		}
	}
	if lit < 5 {
		t.Errorf("trail lit %d cells, want several", lit)
	}

	c.Clear()
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatal("clear left dots behind")
		}
	}
}

func TestDriftPlot(t *testing.T) {
	if out := DriftPlot(nil, 8); out != "(no samples)" {
		t.Errorf("empty series rendered %q", out)
	}
	out := DriftPlot([]float64{0, 1e-9, 2e-9, 1e-9}, 5)
	if !strings.Contains(out, "relative energy drift") {
		t.Error("caption missing")
	}
}
