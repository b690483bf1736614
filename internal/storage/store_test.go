package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorenkp/gravsim/internal/nbody"
)

func sampleFrames() []Frame {
	return []Frame{
		{T: 0.01, Particles: []nbody.Particle{
			{Pos: nbody.Vec3{X: 1}, Vel: nbody.Vec3{Y: 1}, Mass: 1},
			{Pos: nbody.Vec3{X: -1}, Vel: nbody.Vec3{Y: -1}, Mass: 1},
		}},
		{T: 0.02, Particles: []nbody.Particle{
			{Pos: nbody.Vec3{X: 1, Y: 0.01}, Vel: nbody.Vec3{Y: 1}, Mass: 1},
			{Pos: nbody.Vec3{X: -1, Y: -0.01}, Vel: nbody.Vec3{Y: -1}, Mass: 1},
		}},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Scheme:    "janus",
		Companion: "rkf45",
		Dt:        0.01,
		Duration:  10,
		Scale:     1e12,
		G:         1,
		Bodies:    2,
		Metrics:   map[string]float64{"energy_drift": 0},
	}
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	id, err := s.Save(sampleMeta(), sampleFrames())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	meta, err := s.LoadMetadata(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
	assert.False(t, meta.Timestamp.IsZero())
	assert.Equal(t, "janus", meta.Scheme)
	assert.Equal(t, 2, meta.Bodies)
	assert.Equal(t, 0.0, meta.Metrics["energy_drift"])
}

func TestSaveTrajectoryLayout(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Init())

	id, err := s.Save(sampleMeta(), sampleFrames())
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, id, "trajectory.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// t plus six columns per body
	assert.Len(t, rows[0], 1+6*2)
	assert.Equal(t, "t", rows[0][0])
	assert.Equal(t, "x0", rows[0][1])
	assert.Equal(t, "vz1", rows[0][12])
	assert.Equal(t, "0.01", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = s.Save(sampleMeta(), sampleFrames())
	require.NoError(t, err)
	_, err = s.Save(sampleMeta(), nil)
	require.NoError(t, err)

	runs, err = s.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListMissingBaseDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := s.List()
	require.NoError(t, err)
	assert.Nil(t, runs)
}

func TestRecorderDeepCopies(t *testing.T) {
	rec := &Recorder{}
	sim := nbody.New(nil)
	sim.Particles = []nbody.Particle{{Pos: nbody.Vec3{X: 1}}}
	sim.T = 0.5

	rec.OnStep(sim)
	sim.Particles[0].Pos.X = 99
	rec.OnStep(sim)

	require.Len(t, rec.Frames, 2)
	assert.Equal(t, 1.0, rec.Frames[0].Particles[0].Pos.X)
	assert.Equal(t, 99.0, rec.Frames[1].Particles[0].Pos.X)
}
