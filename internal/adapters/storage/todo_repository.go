package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xvierd/todo-cli/internal/domain"
	"github.com/xvierd/todo-cli/internal/ports"
)

// ErrDuplicateTodo is returned when saving a todo whose ID is already stored.
var ErrDuplicateTodo = errors.New("todo already exists")

const todoColumns = `id, title, notes, scheduled_at, created_at, updated_at`

// todoRepository implements ports.TodoRepository using SQLite.
type todoRepository struct {
	db *sql.DB
}

// newTodoRepository creates a new todo repository.
func newTodoRepository(db *sql.DB) ports.TodoRepository {
	return &todoRepository{db: db}
}

// Save appends a todo. The autoincrement seq column records insertion order.
func (r *todoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		todo.ID,
		todo.Title,
		todo.Notes,
		todo.Schedule,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateTodo, todo.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save todo: %w", err)
	}

	return nil
}

// FindByID retrieves a todo by its unique identifier.
func (r *todoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ?`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	return todo, nil
}

// FindAll retrieves every todo in insertion order.
func (r *todoRepository) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	todos := []*domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// Update replaces title, notes and schedule. The seq column is untouched so
// the todo keeps its place in the list.
func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	query := `
		UPDATE todos
		SET title = ?, notes = ?, scheduled_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		todo.Title,
		todo.Notes,
		todo.Schedule,
		todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

// Delete removes a todo.
func (r *todoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

// Count returns the number of stored todos.
func (r *todoRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var todo domain.Todo
	var scheduledAt sql.NullTime

	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Notes,
		&scheduledAt,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if scheduledAt.Valid {
		t := scheduledAt.Time
		todo.Schedule = &t
	}

	return &todo, nil
}
