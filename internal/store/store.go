// Package store is the persistence layer for the academy database: an
// embedded SQLite store holding the four record collections (students,
// courses, bookings, attendance) with index-backed uniqueness enforcement
// and store-assigned identities.
//
// Every exported operation is a self-contained atomic unit of work. No
// multi-operation transaction spans collections except ClearAll. Reads
// issued after a completed write observe that write (read-your-writes
// within a single caller); no ordering is guaranteed across collections.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for the four academy collections.
// A Store is opened once per process and shared by all collaborators;
// open it with Open and release it with Close.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at the given path and applies
// the schema. On first-ever use this defines the four collections and
// their secondary indexes; on subsequent opens it is a no-op. The function
// is idempotent - safe to call multiple times against the same path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// Failure to open or prepare the database is an initialization failure;
// the caller should treat it as fatal to every dependent feature.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ClearAll empties all four collections in one atomic transaction.
// Used by the destructive reset and as the pre-wipe step of restore.
// The AUTOINCREMENT sequences are untouched: identities assigned after a
// clear continue past everything ever assigned, never reusing a value.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear all: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, table := range []string{"students", "courses", "bookings", "attendance"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear all: %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clear all: commit: %w", err)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables and indexes if they don't exist.
// Idempotent; there are no migrations beyond the initial schema.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
