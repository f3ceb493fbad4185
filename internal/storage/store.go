package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/maxwell/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Store keeps run reports under baseDir, one directory per run.
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
	Variant   string             `json:"variant"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Depth     int                `json:"depth"`
	Lobes     int                `json:"lobes"`
	Particles int                `json:"particles"`
	Frames    int                `json:"frames"`
	Dt        float64            `json:"dt"`
	Dropped   int                `json:"dropped"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and the frame summaries as a new run and returns its ID.
// An empty meta.ID is filled from the variant and the current time.
func (s *Store) Save(meta RunMetadata, summaries []metrics.Summary) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Variant, now.UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if len(summaries) == 0 {
		return meta.ID, nil
	}
	if err := gocsv.Marshal(summaries, csvFile); err != nil {
		return "", fmt.Errorf("writing %s: %w", framesFile, err)
	}
	return meta.ID, nil
}

// List returns the stored runs, oldest first. Directories without readable
// metadata are skipped.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the summaries saved with a run.
func (s *Store) LoadFrames(runID string) ([]metrics.Summary, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return []metrics.Summary{}, nil
	}

	var summaries []metrics.Summary
	if err := gocsv.UnmarshalFile(file, &summaries); err != nil {
		return nil, fmt.Errorf("reading %s: %w", framesFile, err)
	}
	return summaries, nil
}
