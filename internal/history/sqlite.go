package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the history database at path. Use ":memory:" for a
// throwaway store. Parent directories are created as needed.
func Open(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, storageError(err, "could not create history directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageError(err, "could not open history database")
	}
	// A second pooled connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, storageError(err, "failed to initialize history schema")
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms REAL NOT NULL,
		files INTEGER NOT NULL,
		links INTEGER NOT NULL,
		checked INTEGER NOT NULL,
		broken INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS broken_links (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores report and its broken links in one transaction.
func (s *SQLiteStore) Record(ctx context.Context, report *linkcheck.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError(err, "failed to begin history transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, root, started_at, duration_ms, files, links, checked, broken) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		report.RunID, report.Root, report.StartedAt.UnixMilli(),
		float64(report.Duration.Microseconds())/1000,
		report.Stats.Files, report.Stats.Links, report.Stats.Checked, len(report.Broken),
	)
	if err != nil {
		return storageError(err, "failed to insert run")
	}

	for i, b := range report.Broken {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO broken_links (run_id, position, source, target) VALUES (?, ?, ?, ?)",
			report.RunID, i, b.Source, b.Target,
		); err != nil {
			return storageError(err, "failed to insert broken link")
		}
	}

	if err := tx.Commit(); err != nil {
		return storageError(err, "failed to commit run")
	}
	return nil
}

// Recent returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, root, started_at, duration_ms, files, links, checked, broken FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, storageError(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMillis int64
		if err := rows.Scan(&r.ID, &r.Root, &startedMillis, &r.DurationMS, &r.Files, &r.Links, &r.Checked, &r.Broken); err != nil {
			return nil, storageError(err, "failed to scan run")
		}
		r.StartedAt = time.UnixMilli(startedMillis)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(fmt.Errorf("iterate rows: %w", err), "failed to query runs")
	}
	return runs, nil
}

// BrokenLinks returns the broken links of runID in discovery order.
func (s *SQLiteStore) BrokenLinks(ctx context.Context, runID string) ([]linkcheck.BrokenLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT source, target FROM broken_links WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, storageError(err, "failed to query broken links")
	}
	defer rows.Close()

	links := []linkcheck.BrokenLink{}
	for rows.Next() {
		var b linkcheck.BrokenLink
		if err := rows.Scan(&b.Source, &b.Target); err != nil {
			return nil, storageError(err, "failed to scan broken link")
		}
		links = append(links, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(fmt.Errorf("iterate rows: %w", err), "failed to query broken links")
	}
	return links, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
