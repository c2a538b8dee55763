// Package domain contains the core entities of the to-do screen.
// These entities are independent of any rendering or storage mechanism.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common domain errors.
var (
	ErrEmptyTodoTitle  = errors.New("todo title cannot be empty")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrInvalidTimeStep = errors.New("invalid time step")
	ErrEditorClosed    = errors.New("editor is not open")
	ErrEditorOpen      = errors.New("editor is already open")
)

// Todo is a single entry on the to-do screen.
type Todo struct {
	ID        string
	Title     string
	Notes     string
	Schedule  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTodo creates a todo with a fresh ID. The title is trimmed and must not
// be empty afterwards.
func NewTodo(title, notes string, schedule *time.Time) (*Todo, error) {
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Todo{
		ID:        generateID(),
		Title:     title,
		Notes:     notes,
		Schedule:  cloneTime(schedule),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeTitle trims surrounding whitespace and rejects empty titles.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTodoTitle
	}
	return title, nil
}

// Replace overwrites the editable fields of the todo. The ID and the
// creation time are left alone.
func (t *Todo) Replace(title, notes string, schedule *time.Time) error {
	title, err := NormalizeTitle(title)
	if err != nil {
		return err
	}
	t.Title = title
	t.Notes = notes
	t.Schedule = cloneTime(schedule)
	t.UpdatedAt = time.Now()
	return nil
}

// HasSchedule returns true if a date and time has been set.
func (t *Todo) HasSchedule() bool {
	return t.Schedule != nil
}

// Clone returns a deep copy so callers can't mutate stored records.
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}
	c := *t
	c.Schedule = cloneTime(t.Schedule)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// generateID creates a new unique identifier.
func generateID() string {
	return uuid.NewString()
}
