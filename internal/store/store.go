// Package store persists companies, analyses, expert ratings, and extraction
// validations in SQLite. Every row is owned by a tenant and every query is
// scoped to one.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

var (
	// ErrAnalysisNotFound is returned when an analysis does not exist for the tenant.
	ErrAnalysisNotFound = errors.New("analysis not found")
	// ErrCompanyNotFound is returned when a company does not exist for the tenant.
	ErrCompanyNotFound = errors.New("company not found")
)

// Store is a SQLite-backed record store.
type Store struct {
	path   string
	db     *sql.DB // write connection
	readDB *sql.DB
	logger *slog.Logger

	maxRetries    int
	baseRetryWait time.Duration
	now           func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:          path,
		logger:        slog.Default(),
		maxRetries:    5,
		baseRetryWait: 100 * time.Millisecond,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening write database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	s.db = db

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	readDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(1000)")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening read database: %w", err)
	}
	readDB.SetMaxOpenConns(10)
	readDB.SetMaxIdleConns(5)
	readDB.SetConnMaxLifetime(5 * time.Minute)
	s.readDB = readDB

	s.logger.Debug("store opened", "path", path)
	return s, nil
}

// Close releases both connection pools.
func (s *Store) Close() error {
	return errors.Join(s.readDB.Close(), s.db.Close())
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var currentVersion int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion); err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}

	migrations := []string{migrationV1}
	for i, migration := range migrations {
		version := i + 1
		if version <= currentVersion {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration transaction: %w", err)
		}
		for _, stmt := range splitStatements(migration) {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("executing migration v%d: %w", version, err)
			}
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			version, formatTime(s.now()),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration v%d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration v%d: %w", version, err)
		}
		s.logger.Debug("applied migration", "version", version)
	}
	return nil
}

// splitStatements splits a SQL script on semicolons, dropping comment lines.
func splitStatements(script string) []string {
	var statements []string
	for _, stmt := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			statements = append(statements, strings.Join(lines, "\n"))
		}
	}
	return statements
}

// retryWrite runs fn, backing off while SQLite reports the database busy.
func (s *Store) retryWrite(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isBusy(err) {
			return err
		}
		lastErr = err
		wait := s.baseRetryWait * time.Duration(1<<attempt)
		s.logger.Debug("database busy, retrying", "operation", operation, "attempt", attempt+1, "wait", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("%s failed after %d retries: %w", operation, s.maxRetries, lastErr)
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED")
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
