// Package storage provides implementations of the storage ports.
//
// Both backends live only in process memory: the slice-backed store and an
// SQLite database opened on ":memory:". Nothing outlives Close.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/xvierd/todo-cli/internal/ports"
	"modernc.org/sqlite"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// New creates the storage for the named backend.
func New(backend string) (ports.Storage, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite()
	default:
		return nil, fmt.Errorf("unknown storage backend %q: must be %s or %s", backend, BackendMemory, BackendSQLite)
	}
}

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db       *sql.DB
	todoRepo ports.TodoRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// NewSQLite creates a private in-memory SQLite database. Each connection to
// ":memory:" sees its own database, so the pool is pinned to one connection.
func NewSQLite() (ports.Storage, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	storage := &sqliteStorage{
		db:       db,
		todoRepo: newTodoRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// Todos returns the todo repository.
func (s *sqliteStorage) Todos() ports.TodoRepository {
	return s.todoRepo
}

// Close closes the database connection, dropping every row.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS todos (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL CHECK (length(trim(title)) > 0),
		notes TEXT NOT NULL DEFAULT '',
		scheduled_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == 2067 // SQLITE_CONSTRAINT_UNIQUE
}
