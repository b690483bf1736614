package viz

import (
	"strings"

	"github.com/sorenkp/gravsim/internal/nbody"
)

// Braille cells pack 2x4 dots per character, unicode block 0x2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// OrbitCanvas accumulates particle positions as Braille dots, so repeated
// plotting of a moving system leaves orbit trails. World coordinates are
// mapped onto a fixed square region centered on the origin.
type OrbitCanvas struct {
	cols, rows int
	extent     float64
	grid       [][]rune
}

// NewOrbitCanvas returns a canvas of cols x rows characters covering world
// coordinates in [-extent, extent] on both axes.
func NewOrbitCanvas(cols, rows int, extent float64) *OrbitCanvas {
	c := &OrbitCanvas{cols: cols, rows: rows, extent: extent}
	c.grid = make([][]rune, rows)
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

// Clear erases all trails.
func (c *OrbitCanvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Plot marks the xy-plane position of every particle.
func (c *OrbitCanvas) Plot(ps []nbody.Particle) {
	w := c.cols * 2
	h := c.rows * 4
	span := 2 * c.extent
	for i := range ps {
		x := int((ps[i].Pos.X + c.extent) / span * float64(w))
		// screen y grows downward
		y := int((c.extent - ps[i].Pos.Y) / span * float64(h))
		c.set(x, y)
	}
}

func (c *OrbitCanvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.grid[row][col] |= dotBits[y%4][x%2]
}

func (c *OrbitCanvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
