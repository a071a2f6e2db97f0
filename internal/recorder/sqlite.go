package recorder

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nvandessel/beliefsim/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario TEXT NOT NULL,
	seed INTEGER NOT NULL,
	steps INTEGER NOT NULL,
	started_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activations (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	tick INTEGER NOT NULL,
	agent TEXT NOT NULL,
	belief TEXT NOT NULL,
	value REAL NOT NULL,
	PRIMARY KEY (run_id, tick, agent, belief)
);

CREATE TABLE IF NOT EXISTS performances (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	tick INTEGER NOT NULL,
	agent TEXT NOT NULL,
	behaviour TEXT NOT NULL,
	PRIMARY KEY (run_id, tick, agent)
);
`

// SQLite records runs into a SQLite database, one transaction per tick.
// Multiple runs accumulate in the same file, keyed by a run id assigned
// at Begin.
type SQLite struct {
	db    *sqlx.DB
	runID int64
}

// NewSQLite opens or creates the database at path and ensures the
// schema exists.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite recorder: empty path")
	}
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite recorder: open: %w", err)
	}
	// Single writer keeps SQLite happy.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite recorder: schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Begin inserts the run row and remembers its id for the tick inserts.
func (s *SQLite) Begin(meta RunMeta) error {
	res, err := s.db.Exec(
		`INSERT INTO runs (scenario, seed, steps, started_at) VALUES (?, ?, ?, ?)`,
		meta.Scenario, meta.Seed, meta.Steps, meta.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite recorder: begin run: %w", err)
	}
	s.runID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite recorder: run id: %w", err)
	}
	return nil
}

// RecordTick writes every row of one tick in a single transaction.
func (s *SQLite) RecordTick(t model.Time, rows []TickRow) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("sqlite recorder: tick %d: %w", t, err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		for belief, value := range row.Activations {
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO activations (run_id, tick, agent, belief, value) VALUES (?, ?, ?, ?, ?)`,
				s.runID, int64(t), row.Agent, belief, value,
			); err != nil {
				return fmt.Errorf("sqlite recorder: tick %d agent %s: %w", t, row.Agent, err)
			}
		}
		if row.Performed != "" {
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO performances (run_id, tick, agent, behaviour) VALUES (?, ?, ?, ?)`,
				s.runID, int64(t), row.Agent, row.Performed,
			); err != nil {
				return fmt.Errorf("sqlite recorder: tick %d agent %s: %w", t, row.Agent, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite recorder: commit tick %d: %w", t, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
