// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/todo-cli/internal/domain"
	"github.com/xvierd/todo-cli/internal/ports"
)

// TodoService is the in-memory to-do store of one screen: create, update,
// delete and list over a ports.Storage.
type TodoService struct {
	storage ports.Storage
	logger  *log.Logger
}

// NewTodoService creates a new todo service.
func NewTodoService(storage ports.Storage) *TodoService {
	return &TodoService{storage: storage, logger: log.New(io.Discard)}
}

// SetLogger sets the logger used for commit and delete events.
func (s *TodoService) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// CreateTodoRequest contains the data needed to create a new todo.
type CreateTodoRequest struct {
	Title    string
	Notes    string
	Schedule *time.Time
}

// Create appends a new todo. An empty or whitespace-only title returns
// domain.ErrEmptyTodoTitle and leaves the store unchanged.
func (s *TodoService) Create(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error) {
	todo, err := domain.NewTodo(req.Title, req.Notes, req.Schedule)
	if err != nil {
		s.logger.Warn("create rejected", "err", err)
		return nil, fmt.Errorf("invalid todo: %w", err)
	}

	if err := s.storage.Todos().Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	s.logger.Debug("todo created", "id", todo.ID, "title", todo.Title, "scheduled", todo.HasSchedule())
	return todo, nil
}

// UpdateTodoRequest contains the replacement values for an existing todo.
type UpdateTodoRequest struct {
	ID       string
	Title    string
	Notes    string
	Schedule *time.Time
}

// Update replaces title, notes and schedule of the todo with the given ID,
// keeping its position. It returns domain.ErrEmptyTodoTitle or
// domain.ErrTodoNotFound without changing anything when it can't apply.
func (s *TodoService) Update(ctx context.Context, req UpdateTodoRequest) (*domain.Todo, error) {
	if _, err := domain.NormalizeTitle(req.Title); err != nil {
		s.logger.Warn("update rejected", "id", req.ID, "err", err)
		return nil, fmt.Errorf("invalid todo: %w", err)
	}

	todo, err := s.storage.Todos().FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if err := todo.Replace(req.Title, req.Notes, req.Schedule); err != nil {
		return nil, fmt.Errorf("invalid todo: %w", err)
	}

	if err := s.storage.Todos().Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Debug("todo updated", "id", todo.ID, "title", todo.Title, "scheduled", todo.HasSchedule())
	return todo, nil
}

// Delete removes a todo. Deleting a todo that isn't there is not an error,
// so a second delete of the same ID is a no-op.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	err := s.storage.Todos().Delete(ctx, id)
	if errors.Is(err, domain.ErrTodoNotFound) {
		s.logger.Debug("delete of missing todo ignored", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Debug("todo deleted", "id", id)
	return nil
}

// Get retrieves a single todo by ID.
func (s *TodoService) Get(ctx context.Context, id string) (*domain.Todo, error) {
	return s.storage.Todos().FindByID(ctx, id)
}

// List returns a snapshot of every todo in insertion order.
func (s *TodoService) List(ctx context.Context) ([]*domain.Todo, error) {
	todos, err := s.storage.Todos().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}
