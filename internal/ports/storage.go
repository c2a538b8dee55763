// Package ports defines the interfaces between the to-do domain and the
// infrastructure that backs it, following hexagonal architecture principles.
package ports

import (
	"context"

	"github.com/xvierd/todo-cli/internal/domain"
)

// TodoRepository defines the interface for todo storage.
// This is a driven port (implemented by adapters).
//
// Implementations keep records in insertion order and hand out copies, so a
// caller mutating a returned todo never changes what is stored.
type TodoRepository interface {
	// Save appends a new todo after every existing one.
	Save(ctx context.Context, todo *domain.Todo) error

	// FindByID retrieves a todo by its unique identifier.
	// Returns domain.ErrTodoNotFound if no todo has that ID.
	FindByID(ctx context.Context, id string) (*domain.Todo, error)

	// FindAll retrieves every todo in insertion order.
	FindAll(ctx context.Context) ([]*domain.Todo, error)

	// Update replaces the stored fields of an existing todo, keeping its position.
	// Returns domain.ErrTodoNotFound if no todo has that ID.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete removes a todo.
	// Returns domain.ErrTodoNotFound if no todo has that ID.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored todos.
	Count(ctx context.Context) (int, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Todos provides access to todo operations.
	Todos() TodoRepository

	// Close releases the storage. Everything stored is gone afterwards.
	Close() error

	// Migrate prepares the backing schema, if any.
	Migrate() error
}
