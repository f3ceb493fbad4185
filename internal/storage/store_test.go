package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/maxwell/internal/metrics"
)

func sampleSummaries() []metrics.Summary {
	return []metrics.Summary{
		{Frame: 60, Time: 960, Particles: 18, TotalEnergy: 0.42, MeanEnergy: 0.0233, MedianEnergy: 0.02, HotFraction: 0.1, SortedFraction: 1},
		{Frame: 120, Time: 1920, Particles: 18, TotalEnergy: 0.43, MeanEnergy: 0.0239, P90Energy: 0.06, HotFraction: 0.15, SortedFraction: 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Variant:   "audio",
		Seed:      42,
		Frames:    120,
		Dt:        16,
		Particles: 18,
		Metrics:   map[string]float64{"energy_drift": 0.05},
	}

	runID, err := st.Save(meta, sampleSummaries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Variant != "audio" {
		t.Errorf("expected variant 'audio', got '%s'", loaded.Variant)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Metrics["energy_drift"] != 0.05 {
		t.Errorf("expected drift 0.05, got %f", loaded.Metrics["energy_drift"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	want := sampleSummaries()
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d: expected %+v, got %+v", i, want[i], frames[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a"} {
		meta := RunMetadata{ID: id, Variant: "full", Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if _, err := st.Save(meta, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "b" {
		t.Errorf("expected oldest run first, got %s", runs[0].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Variant: "visual"}, sampleSummaries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadFramesEmptyRun(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Variant: "full"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, RunMetadata{ID: "x", Variant: "audio"}, sampleSummaries()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if report.ID != "x" || len(report.Frames) != 2 {
		t.Errorf("unexpected report %+v", report)
	}
}
