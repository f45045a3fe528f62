// Package store provides SQLite-backed persistence for generation run
// history. The database lives at .flowgen/history.db; every successful
// generation records what was diagrammed and the resulting diagram text so
// past runs can be listed and compared.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the .flowgen/history.db database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Run is one recorded generation run.
type Run struct {
	ID           int64
	SourcePath   string
	MethodFilter string
	ClassName    string
	NodeCount    int
	EdgeCount    int
	Diagram      string
	CreatedAt    time.Time
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_path TEXT NOT NULL,
    method_filter TEXT NOT NULL DEFAULT '',
    class_name TEXT NOT NULL DEFAULT '',
    node_count INTEGER NOT NULL DEFAULT 0,
    edge_count INTEGER NOT NULL DEFAULT 0,
    diagram TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source_path);
`

// Open opens or creates the history database in the given .flowgen
// directory. It initializes the schema if the database is new.
func Open(configDir string) (*Store, error) {
	dbPath := filepath.Join(configDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun inserts a run and returns its assigned id.
func (s *Store) RecordRun(r Run) (int64, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (source_path, method_filter, class_name, node_count, edge_count, diagram, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SourcePath, r.MethodFilter, r.ClassName, r.NodeCount, r.EdgeCount, r.Diagram,
		created.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first, capped at limit.
// A non-positive limit returns everything.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, source_path, method_filter, class_name, node_count, edge_count, created_at
	          FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.MethodFilter, &r.ClassName,
			&r.NodeCount, &r.EdgeCount, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run including its stored diagram text.
func (s *Store) GetRun(id int64) (*Run, error) {
	var r Run
	var created string
	err := s.db.QueryRow(
		`SELECT id, source_path, method_filter, class_name, node_count, edge_count, diagram, created_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.SourcePath, &r.MethodFilter, &r.ClassName,
		&r.NodeCount, &r.EdgeCount, &r.Diagram, &created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &r, nil
}

// Clear removes all recorded runs.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
