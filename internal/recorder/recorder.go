// Package recorder provides write-only telemetry sinks for simulation
// runs: per-tick activation and behaviour records streamed to memory, a
// JSONL file, or a SQLite database. Recorders observe runs; they are
// not simulation state and nothing reads them back into a run.
package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/nvandessel/beliefsim/internal/config"
	"github.com/nvandessel/beliefsim/internal/model"
)

// RunMeta identifies one run.
type RunMeta struct {
	Scenario  string    `json:"scenario"`
	Seed      int64     `json:"seed"`
	Steps     int       `json:"steps"`
	StartedAt time.Time `json:"started_at"`
}

// TickRow is one agent's state at one tick.
type TickRow struct {
	Agent       string             `json:"agent"`
	Performed   string             `json:"performed"`
	Activations map[string]float64 `json:"activations"`
}

// Recorder receives run telemetry. Begin is called once before the
// first tick, RecordTick once per tick with every agent's row, Close
// once when the run ends. Implementations need not be safe for
// concurrent RecordTick calls; the runner delivers ticks sequentially
// from its observer.
type Recorder interface {
	Begin(meta RunMeta) error
	RecordTick(t model.Time, rows []TickRow) error
	Close() error
}

// New builds the recorder the configuration selects.
func New(cfg config.RecorderConfig) (Recorder, error) {
	switch cfg.Backend {
	case "", config.RecorderNone:
		return Nop{}, nil
	case config.RecorderMemory:
		return NewMemory(), nil
	case config.RecorderJSONL:
		return NewJSONL(cfg.Path)
	case config.RecorderSQLite:
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown recorder backend %q", cfg.Backend)
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Begin(RunMeta) error                   { return nil }
func (Nop) RecordTick(model.Time, []TickRow) error { return nil }
func (Nop) Close() error                          { return nil }

// Memory keeps the full run in memory for inspection, mainly by tests
// and the MCP run tool.
type Memory struct {
	mu    sync.Mutex
	meta  RunMeta
	order []model.Time
	ticks map[model.Time][]TickRow
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{ticks: make(map[model.Time][]TickRow)}
}

// Begin stores the run metadata.
func (m *Memory) Begin(meta RunMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta = meta
	return nil
}

// RecordTick stores the rows for t, overwriting a previous record of
// the same tick.
func (m *Memory) RecordTick(t model.Time, rows []TickRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, seen := m.ticks[t]; !seen {
		m.order = append(m.order, t)
	}
	m.ticks[t] = rows
	return nil
}

// Close is a no-op; the recorded run stays readable.
func (m *Memory) Close() error { return nil }

// Meta returns the run metadata.
func (m *Memory) Meta() RunMeta {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta
}

// Ticks returns the recorded tick indices in arrival order.
func (m *Memory) Ticks() []model.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Time, len(m.order))
	copy(out, m.order)
	return out
}

// Rows returns the rows recorded at t, nil if the tick was never
// recorded.
func (m *Memory) Rows(t model.Time) []TickRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks[t]
}
