// Package storage persists simulation runs: one directory per run holding
// metadata and the recorded trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sorenkp/gravsim/internal/nbody"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scheme    string             `json:"scheme"`
	Companion string             `json:"companion,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Scale     float64            `json:"scale,omitempty"`
	G         float64            `json:"g"`
	Softening float64            `json:"softening"`
	Bodies    int                `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Frame is one recorded trajectory sample.
type Frame struct {
	T         float64
	Particles []nbody.Particle
}

// Recorder captures a frame after every completed step.
type Recorder struct {
	Frames []Frame
}

func (r *Recorder) OnStep(s *nbody.Simulation) {
	ps := make([]nbody.Particle, len(s.Particles))
	copy(ps, s.Particles)
	r.Frames = append(r.Frames, Frame{T: s.T, Particles: ps})
}

// Save writes a run directory under the store base and returns the run ID.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	trajFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer trajFile.Close()
	w := csv.NewWriter(trajFile)
	defer w.Flush()

	header := []string{"t"}
	for i := 0; i < meta.Bodies; i++ {
		for _, c := range []string{"x", "y", "z", "vx", "vy", "vz"} {
			header = append(header, fmt.Sprintf("%s%d", c, i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	row := make([]string, 0, len(header))
	for _, f := range frames {
		row = row[:0]
		row = append(row, strconv.FormatFloat(f.T, 'g', -1, 64))
		for _, p := range f.Particles {
			for _, v := range []float64{p.Pos.X, p.Pos.Y, p.Pos.Z, p.Vel.X, p.Vel.Y, p.Vel.Z} {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return meta.ID, nil
}

// LoadMetadata reads one run's metadata by ID.
func (s *Store) LoadMetadata(id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns metadata for every run in the store, in directory order.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}
