// Package store persists simulation runs as one directory per run:
// metadata.json describing the scenario and samples.csv holding the
// recorded positions.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/pointsim/internal/config"
	"github.com/san-kum/pointsim/internal/trajectory"
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

type BodyMeta struct {
	ID   string  `json:"id"`
	Mass float64 `json:"mass"`
}

type RunMetadata struct {
	ID        string     `json:"id"`
	Scenario  string     `json:"scenario"`
	Field     string     `json:"field"`
	Timestamp time.Time  `json:"timestamp"`
	Dt        float64    `json:"dt"`
	Duration  float64    `json:"duration"`
	Steps     int        `json:"steps"`
	Bodies    []BodyMeta `json:"bodies"`
}

// Save writes one run: tracks holds the recorded trajectory of each
// configured body, in configuration order, all sampled at times.
func (s *Store) Save(cfg *config.Config, times []float64, tracks []*trajectory.Trajectory) (string, error) {
	if len(tracks) != len(cfg.Bodies) {
		return "", fmt.Errorf("store: %d tracks for %d bodies", len(tracks), len(cfg.Bodies))
	}
	runID := fmt.Sprintf("%s_%d", cfg.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  cfg.Scenario,
		Field:     cfg.Field,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     len(times),
	}
	for _, b := range cfg.Bodies {
		meta.Bodies = append(meta.Bodies, BodyMeta{ID: b.ID, Mass: b.Mass})
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for _, b := range cfg.Bodies {
		header = append(header, b.ID+"_x", b.ID+"_y", b.ID+"_z")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, track := range tracks {
			p, err := track.Get(i)
			if err != nil {
				return "", err
			}
			for k := 0; k < 3; k++ {
				row = append(row, strconv.FormatFloat(p.Position[k], 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads a run's samples back as times plus one xyz column
// triple per body, in header order.
func (s *Store) LoadSamples(runID string) ([]float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	samples := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 1 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		times = append(times, t)
		samples = append(samples, row)
	}
	return times, samples, nil
}
