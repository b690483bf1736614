package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sorenkp/gravsim/internal/nbody"
	"github.com/sorenkp/gravsim/internal/storage"
)

func circleFrames(n int) []storage.Frame {
	frames := make([]storage.Frame, n)
	for i := range frames {
		t := float64(i) * 0.1
		frames[i] = storage.Frame{
			T: t,
			Particles: []nbody.Particle{
				{Pos: nbody.Vec3{X: t, Y: t * t}},
				{Pos: nbody.Vec3{X: -t, Y: -t * t}},
			},
		}
	}
	return frames
}

func TestTrajectorySVG(t *testing.T) {
	doc := TrajectorySVG(circleFrames(20), 400, 300)
	if !strings.HasPrefix(doc, `<?xml`) {
		t.Fatal("missing xml declaration")
	}
	if got := strings.Count(doc, "<polyline"); got != 2 {
		t.Errorf("%d polylines, want one per body", got)
	}
	if !strings.Contains(doc, `width="400"`) {
		t.Error("canvas width not applied")
	}
}

func TestTrajectorySVGDegenerate(t *testing.T) {
	if doc := TrajectorySVG(nil, 400, 300); doc != "" {
		t.Error("want empty document for no frames")
	}
	if doc := TrajectorySVG(circleFrames(1), 400, 300); doc != "" {
		t.Error("want empty document for a single frame")
	}
}

func TestWriteTrajectorySVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.svg")
	if err := WriteTrajectorySVG(path, circleFrames(10), 200, 200); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("document truncated")
	}

	if err := WriteTrajectorySVG(path, nil, 200, 200); err == nil {
		t.Error("want error for empty frame set")
	}
}
