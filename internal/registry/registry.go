// Package registry records provenance for generated datasets. Every
// simulation run is appended to a SQLite database under .reprorepo/ so that a
// published dataset can later be traced back to the seed and configuration
// that produced it.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at  TEXT    NOT NULL,
    seed        INTEGER NOT NULL,
    subjects    INTEGER NOT NULL,
    waves       INTEGER NOT NULL,
    rows        INTEGER NOT NULL,
    checksum    TEXT    NOT NULL,
    path        TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one recorded simulation run.
type Run struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      int64     `json:"seed"`
	Subjects  int       `json:"subjects"`
	Waves     int       `json:"waves"`
	Rows      int       `json:"rows"`
	Checksum  string    `json:"checksum"`
	Path      string    `json:"path"`
}

// Registry is a SQLite-backed log of simulation runs.
type Registry struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the run registry at
// <projectRoot>/.reprorepo/runs.db.
func Open(projectRoot string) (*Registry, error) {
	dir := filepath.Join(projectRoot, ".reprorepo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	dbPath := filepath.Join(dir, "runs.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with a single writer

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize registry schema: %w", err)
	}

	return &Registry{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Record appends a run and returns its assigned ID. The timestamp is stored
// in UTC with second precision.
func (r *Registry) Record(ctx context.Context, run Run) (int64, error) {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, seed, subjects, waves, rows, checksum, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UTC().Format(time.RFC3339),
		run.Seed, run.Subjects, run.Waves, run.Rows, run.Checksum, run.Path,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// List returns recorded runs, newest first, up to limit. A limit of 0 returns
// all runs.
func (r *Registry) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, seed, subjects, waves, rows, checksum, path
	          FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Seed, &run.Subjects,
			&run.Waves, &run.Rows, &run.Checksum, &run.Path); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp for run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns a single run by ID.
func (r *Registry) Get(ctx context.Context, id int64) (*Run, error) {
	var run Run
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, seed, subjects, waves, rows, checksum, path
		 FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &createdAt, &run.Seed, &run.Subjects,
			&run.Waves, &run.Rows, &run.Checksum, &run.Path)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp for run %d: %w", id, err)
	}
	return &run, nil
}
