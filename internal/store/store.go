// Package store persists learner state as namespaced key-value
// records. Each (userID, courseID, namespace) triple maps to one JSON
// document; the four namespaces are saved independently so a write to
// one can never clobber another.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database backing the durable repository.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It
// applies recommended pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repo returns a Repository backed by this store.
func (s *Store) Repo() Repository {
	return &sqlRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			user_id    TEXT NOT NULL,
			course_id  TEXT NOT NULL,
			namespace  TEXT NOT NULL,
			data       BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, course_id, namespace)
		)`)
	return err
}

// sqlRepo implements Repository over the records table.
type sqlRepo struct {
	db *sql.DB
}

func (r *sqlRepo) Get(ctx context.Context, userID, courseID, namespace string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE user_id = ? AND course_id = ? AND namespace = ?`,
		userID, courseID, namespace).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", namespace, err)
	}
	return data, nil
}

func (r *sqlRepo) Set(ctx context.Context, userID, courseID, namespace string, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (user_id, course_id, namespace, data, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, course_id, namespace)
		 DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, courseID, namespace, data)
	if err != nil {
		return fmt.Errorf("set %s: %w", namespace, err)
	}
	return nil
}

func (r *sqlRepo) Delete(ctx context.Context, userID, courseID, namespace string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE user_id = ? AND course_id = ? AND namespace = ?`,
		userID, courseID, namespace)
	if err != nil {
		return fmt.Errorf("delete %s: %w", namespace, err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. COURSEFLOW_DB environment variable
// 2. $XDG_DATA_HOME/courseflow/courseflow.db
// 3. ~/.local/share/courseflow/courseflow.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COURSEFLOW_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "courseflow", "courseflow.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
