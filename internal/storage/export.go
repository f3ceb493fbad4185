package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/maxwell/internal/metrics"
)

// Report is a run as a single JSON document.
type Report struct {
	RunMetadata
	Frames []metrics.Summary `json:"frames"`
}

func ExportJSON(path string, meta RunMetadata, summaries []metrics.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, summaries)
}

func WriteJSON(w io.Writer, meta RunMetadata, summaries []metrics.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Report{RunMetadata: meta, Frames: summaries})
}
