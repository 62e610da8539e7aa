package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// Schema version tracking:
// 0 - pre-schema database
// 1 - collections(key, value) table
const currentSchemaVersion = 1

// SQLite is a durable Adapter over a single collections table.
// One row per collection key; the value column holds the serialized
// collection.
type SQLite struct {
	db   *sql.DB
	opts options
	log  *slog.Logger
}

// Open creates or opens a SQLite-backed adapter at path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - a single connection, so this process is the only writer
//
// Open is idempotent - safe to call against an existing store.
func Open(path string, log *slog.Logger, opts ...Option) (*SQLite, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect kv store: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY inside the process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &SQLite{db: db, log: log}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get implements Adapter. Absent keys and read failures both yield nil;
// failures are logged, never surfaced.
func (s *SQLite) Get(ctx context.Context, key string) []byte {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.log.Error("kv get failed", "key", key, "err", err)
		return nil
	}
	return value
}

// Set implements Adapter. Quota and storage failures return false.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) bool {
	if s.opts.overQuota(value) {
		s.log.Warn("kv set over quota", "key", key, "bytes", len(value), "max", s.opts.maxValueBytes)
		return false
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		s.log.Error("kv set failed", "key", key, "err", err)
		return false
	}
	return true
}

// Delete implements Adapter.
func (s *SQLite) Delete(ctx context.Context, key string) bool {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE key = ?`, key,
	); err != nil {
		s.log.Error("kv delete failed", "key", key, "err", err)
		return false
	}
	return true
}

// Keys implements Adapter.
func (s *SQLite) Keys(ctx context.Context) []string {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM collections ORDER BY key ASC`,
	)
	if err != nil {
		s.log.Error("kv keys failed", "err", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.log.Error("kv keys scan failed", "err", err)
			return keys
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("kv keys iterate failed", "err", err)
	}
	return keys
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates the collections table if absent and records the
// adapter's schema version. Idempotent.
func applySchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create collections table: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
