// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only SQLite log of generation runs.
// Past results are never fed back into a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/papergen/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	backend     TEXT NOT NULL,
	model       TEXT NOT NULL,
	threshold   INTEGER NOT NULL,
	papers      INTEGER NOT NULL,
	success     INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	output_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

const (
	// defaultLimit caps List when no limit is given.
	defaultLimit = 20
	// timeLayout is fixed-width so started_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store is the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one run.
func (s *Store) Record(ctx context.Context, run types.Run) error {
	query, args, err := sq.Insert("runs").
		Columns("id", "started_at", "backend", "model", "threshold", "papers", "success", "error", "output_path").
		Values(run.ID, run.StartedAt.UTC().Format(timeLayout), string(run.Backend), run.Model,
			run.Threshold, run.Papers, run.Success, run.Error, run.OutputPath).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A non-positive limit means 20.
// When onlyFailed is set, successful runs are skipped.
func (s *Store) List(ctx context.Context, limit int, onlyFailed bool) ([]types.Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	b := sq.Select("id", "started_at", "backend", "model", "threshold", "papers", "success", "error", "output_path").
		From("runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit))
	if onlyFailed {
		b = b.Where(sq.Eq{"success": false})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			r       types.Run
			started string
			backend string
		)
		if err := rows.Scan(&r.ID, &started, &backend, &r.Model, &r.Threshold, &r.Papers, &r.Success, &r.Error, &r.OutputPath); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Backend = types.LLMBackend(backend)
		r.StartedAt, err = time.Parse(timeLayout, started)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
