package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvandessel/beliefsim/internal/model"
)

// JSONL appends one JSON document per tick to a file. The first line is
// the run metadata, each following line one tick.
type JSONL struct {
	file *os.File
	enc  *json.Encoder
}

type jsonlTick struct {
	Tick model.Time `json:"tick"`
	Rows []TickRow  `json:"rows"`
}

// NewJSONL creates a JSONL recorder appending to path, creating parent
// directories as needed.
func NewJSONL(path string) (*JSONL, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonl recorder: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("jsonl recorder: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("jsonl recorder: %w", err)
	}
	return &JSONL{file: f, enc: json.NewEncoder(f)}, nil
}

// Begin writes the run metadata line.
func (j *JSONL) Begin(meta RunMeta) error {
	if err := j.enc.Encode(meta); err != nil {
		return fmt.Errorf("jsonl recorder: write meta: %w", err)
	}
	return nil
}

// RecordTick writes one tick line.
func (j *JSONL) RecordTick(t model.Time, rows []TickRow) error {
	if err := j.enc.Encode(jsonlTick{Tick: t, Rows: rows}); err != nil {
		return fmt.Errorf("jsonl recorder: write tick %d: %w", t, err)
	}
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	return j.file.Close()
}
