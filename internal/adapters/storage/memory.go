package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/xvierd/todo-cli/internal/domain"
	"github.com/xvierd/todo-cli/internal/ports"
)

// memoryStorage implements ports.Storage with a plain ordered slice.
type memoryStorage struct {
	todos *memoryTodoRepository
}

// Ensure memoryStorage implements ports.Storage.
var _ ports.Storage = (*memoryStorage)(nil)

// NewMemory creates an empty slice-backed storage.
func NewMemory() ports.Storage {
	return &memoryStorage{todos: &memoryTodoRepository{}}
}

// Todos returns the todo repository.
func (s *memoryStorage) Todos() ports.TodoRepository {
	return s.todos
}

// Close drops every stored todo.
func (s *memoryStorage) Close() error {
	s.todos.mu.Lock()
	defer s.todos.mu.Unlock()
	s.todos.items = nil
	return nil
}

// Migrate is a no-op; there is no schema.
func (s *memoryStorage) Migrate() error {
	return nil
}

// memoryTodoRepository implements ports.TodoRepository. Records are stored as
// private copies in insertion order.
type memoryTodoRepository struct {
	mu    sync.RWMutex
	items []*domain.Todo
}

func (r *memoryTodoRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(t *domain.Todo) bool { return t.ID == id })
}

// Save appends a todo.
func (r *memoryTodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(todo.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTodo, todo.ID)
	}
	r.items = append(r.items, todo.Clone())
	return nil
}

// FindByID retrieves a todo by its unique identifier.
func (r *memoryTodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrTodoNotFound
	}
	return r.items[i].Clone(), nil
}

// FindAll retrieves every todo in insertion order.
func (r *memoryTodoRepository) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Todo, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t.Clone())
	}
	return out, nil
}

// Update replaces a todo in place.
func (r *memoryTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(todo.ID)
	if i < 0 {
		return domain.ErrTodoNotFound
	}
	updated := todo.Clone()
	updated.CreatedAt = r.items[i].CreatedAt
	r.items[i] = updated
	return nil
}

// Delete removes a todo.
func (r *memoryTodoRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrTodoNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// Count returns the number of stored todos.
func (r *memoryTodoRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
