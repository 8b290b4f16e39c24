// Package diag keeps a local SQLite journal of failed gateway calls, so failures
// the UI does not surface can be inspected later with `chatlist failures`.
package diag

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chatlist/internal/gateway"
	"chatlist/internal/logging"

	_ "modernc.org/sqlite"
)

// DefaultLimit is the number of entries Recent returns when limit <= 0.
const DefaultLimit = 20

// Entry is one journaled failure.
type Entry struct {
	ID int64
	gateway.Failure
}

// Store is the failure journal. It implements gateway.FailureRecorder.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

var _ gateway.FailureRecorder = (*Store)(nil)

// NewStore creates or opens the journal at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("diagnostics database path required")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// initSchema creates the database schema.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		op TEXT NOT NULL,
		target TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL,
		at_unix_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_failures_at ON failures(at_unix_ms);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordFailure appends f to the journal.
func (s *Store) RecordFailure(ctx context.Context, f gateway.Failure) error {
	if f.At.IsZero() {
		f.At = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO failures (op, target, status, message, at_unix_ms) VALUES (?, ?, ?, ?, ?)`,
		f.Op, f.Target, f.Status, f.Message, f.At.UnixMilli())
	if err != nil {
		logging.DiagWarn("failed to journal %s failure: %v", f.Op, err)
		return fmt.Errorf("failed to record failure: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, op, target, status, message, at_unix_ms FROM failures
		 ORDER BY at_unix_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var atMs int64
		if err := rows.Scan(&e.ID, &e.Op, &e.Target, &e.Status, &e.Message, &atMs); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		e.At = time.UnixMilli(atMs).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of journaled failures.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM failures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count failures: %w", err)
	}
	return n, nil
}
