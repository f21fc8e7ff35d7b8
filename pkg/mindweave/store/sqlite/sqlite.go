// Package sqlite persists mind maps in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mindweave/mindweave/pkg/mindweave"
	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
	"github.com/mindweave/mindweave/pkg/mindweave/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and
// initializes the schema.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS mindmaps (
	id TEXT PRIMARY KEY,
	graph TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mindmaps_created_at ON mindmaps(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveMap inserts or replaces a mind map, keyed by id.
func (s *sqliteStore) SaveMap(ctx context.Context, m store.MindMap) error {
	if m.ID == "" {
		return fmt.Errorf("empty mind map id: %w", internalerr.ErrInvalidInput)
	}
	graphJSON, err := json.Marshal(m.Graph)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO mindmaps (id, graph, created_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	graph=excluded.graph,
	created_at=excluded.created_at;
`
	_, err = s.db.ExecContext(ctx, stmt, m.ID, string(graphJSON), m.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// GetMap returns a mind map by id.
func (s *sqliteStore) GetMap(ctx context.Context, id string) (store.MindMap, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, graph, created_at FROM mindmaps WHERE id = ?`, id)
	m, err := scanMap(row)
	if err == sql.ErrNoRows {
		return store.MindMap{}, false, nil
	}
	if err != nil {
		return store.MindMap{}, false, err
	}
	return m, true, nil
}

// LatestMap returns the most recently created mind map.
func (s *sqliteStore) LatestMap(ctx context.Context) (store.MindMap, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, graph, created_at FROM mindmaps
ORDER BY created_at DESC, id DESC LIMIT 1`)
	m, err := scanMap(row)
	if err == sql.ErrNoRows {
		return store.MindMap{}, false, nil
	}
	if err != nil {
		return store.MindMap{}, false, err
	}
	return m, true, nil
}

// ListMaps returns maps newest first.
func (s *sqliteStore) ListMaps(ctx context.Context, limit int) ([]store.MindMap, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, graph, created_at FROM mindmaps
ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.MindMap
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMap removes a mind map by id.
func (s *sqliteStore) DeleteMap(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM mindmaps WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMap(row rowScanner) (store.MindMap, error) {
	var m store.MindMap
	var graphJSON, createdAt string
	if err := row.Scan(&m.ID, &graphJSON, &createdAt); err != nil {
		return store.MindMap{}, err
	}

	var graph mindweave.Graph
	if err := json.Unmarshal([]byte(graphJSON), &graph); err != nil {
		return store.MindMap{}, err
	}
	m.Graph = graph

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.MindMap{}, err
	}
	m.CreatedAt = ts
	return m, nil
}
