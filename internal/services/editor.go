package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/todo-cli/internal/domain"
)

// EditorMode is the state of the add/edit dialog.
type EditorMode int

const (
	EditorClosed EditorMode = iota
	EditorCreate
	EditorEdit
)

// String returns a human-readable label.
func (m EditorMode) String() string {
	switch m {
	case EditorClosed:
		return "closed"
	case EditorCreate:
		return "create"
	case EditorEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Editor holds the editing session behind the add/edit dialog: which todo is
// being edited, the draft values and which picker panels are showing.
// Nothing reaches the TodoService until Save.
type Editor struct {
	todos  *TodoService
	now    func() time.Time
	logger *log.Logger

	onValidationError func(error)

	mode            EditorMode
	targetID        string
	draft           domain.Draft
	calendarVisible bool
	timeListVisible bool
}

// NewEditor creates a closed editor that commits through todos.
func NewEditor(todos *TodoService) *Editor {
	return &Editor{
		todos:  todos,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
}

// SetClock sets the source of "now" used when a picked day or time needs a
// default for the other half of the schedule.
func (e *Editor) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// SetLogger sets the logger for session transitions.
func (e *Editor) SetLogger(logger *log.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// SetValidationHook sets a callback fired when Save is refused because the
// title is empty. The session stays open either way.
func (e *Editor) SetValidationHook(fn func(error)) {
	e.onValidationError = fn
}

// Mode returns the current state.
func (e *Editor) Mode() EditorMode { return e.mode }

// IsOpen returns true while the dialog is showing.
func (e *Editor) IsOpen() bool { return e.mode != EditorClosed }

// TargetID returns the ID of the todo being edited, or "" when creating.
func (e *Editor) TargetID() string { return e.targetID }

// Draft returns a copy of the draft values.
func (e *Editor) Draft() domain.Draft { return e.draft.Clone() }

// CalendarVisible reports whether the calendar panel is open.
func (e *Editor) CalendarVisible() bool { return e.calendarVisible }

// TimeListVisible reports whether the time-list panel is open.
func (e *Editor) TimeListVisible() bool { return e.timeListVisible }

func (e *Editor) reset(mode EditorMode, targetID string, draft domain.Draft) {
	e.mode = mode
	e.targetID = targetID
	e.draft = draft
	e.calendarVisible = false
	e.timeListVisible = false
}

// OpenCreate opens the dialog with an empty draft.
func (e *Editor) OpenCreate() error {
	if e.IsOpen() {
		return domain.ErrEditorOpen
	}
	e.reset(EditorCreate, "", domain.Draft{})
	e.logger.Debug("editor opened", "mode", e.mode)
	return nil
}

// OpenEdit opens the dialog seeded from the todo with the given ID. If the
// todo no longer exists the editor stays closed.
func (e *Editor) OpenEdit(ctx context.Context, id string) error {
	if e.IsOpen() {
		return domain.ErrEditorOpen
	}
	todo, err := e.todos.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	e.reset(EditorEdit, todo.ID, domain.DraftFromTodo(todo))
	e.logger.Debug("editor opened", "mode", e.mode, "id", id)
	return nil
}

// Cancel discards the draft and closes the dialog. The store is untouched.
func (e *Editor) Cancel() {
	if !e.IsOpen() {
		return
	}
	e.logger.Debug("editor cancelled", "mode", e.mode, "id", e.targetID)
	e.reset(EditorClosed, "", domain.Draft{})
}

// Save commits the draft and closes the dialog. An empty title returns
// domain.ErrEmptyTodoTitle and keeps the dialog open with the draft intact.
// If the todo being edited was removed meanwhile, domain.ErrTodoNotFound is
// returned and the dialog closes since there is nothing left to edit.
func (e *Editor) Save(ctx context.Context) (*domain.Todo, error) {
	if !e.IsOpen() {
		return nil, domain.ErrEditorClosed
	}
	if _, err := domain.NormalizeTitle(e.draft.Title); err != nil {
		e.logger.Warn("save refused", "mode", e.mode, "err", err)
		if e.onValidationError != nil {
			e.onValidationError(err)
		}
		return nil, err
	}

	var (
		todo *domain.Todo
		err  error
	)
	switch e.mode {
	case EditorCreate:
		todo, err = e.todos.Create(ctx, CreateTodoRequest{
			Title:    e.draft.Title,
			Notes:    e.draft.Notes,
			Schedule: e.draft.Schedule,
		})
	case EditorEdit:
		todo, err = e.todos.Update(ctx, UpdateTodoRequest{
			ID:       e.targetID,
			Title:    e.draft.Title,
			Notes:    e.draft.Notes,
			Schedule: e.draft.Schedule,
		})
		if errors.Is(err, domain.ErrTodoNotFound) {
			e.reset(EditorClosed, "", domain.Draft{})
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	e.reset(EditorClosed, "", domain.Draft{})
	return todo, nil
}

// SetTitle replaces the draft title.
func (e *Editor) SetTitle(title string) error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	e.draft.Title = title
	return nil
}

// SetNotes replaces the draft notes.
func (e *Editor) SetNotes(notes string) error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	e.draft.Notes = notes
	return nil
}

// ToggleCalendar shows or hides the calendar panel.
func (e *Editor) ToggleCalendar() error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	e.calendarVisible = !e.calendarVisible
	return nil
}

// ToggleTimeList shows or hides the time-list panel.
func (e *Editor) ToggleTimeList() error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	e.timeListVisible = !e.timeListVisible
	return nil
}

// SelectDay sets the date of the draft schedule and closes the calendar.
func (e *Editor) SelectDay(year int, month time.Month, day int) error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	e.draft.SelectDay(year, month, day, e.now())
	e.calendarVisible = false
	return nil
}

// SelectTime sets the time of day of the draft schedule from an "HH:MM"
// slot and closes the time list. A malformed slot changes nothing.
func (e *Editor) SelectTime(slot string) error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	if err := e.draft.SelectTime(slot, e.now()); err != nil {
		return err
	}
	e.timeListVisible = false
	return nil
}

// ClearSchedule removes the draft schedule. Panels stay as they are.
func (e *Editor) ClearSchedule() error {
	if !e.IsOpen() {
		return domain.ErrEditorClosed
	}
	e.draft.Clear()
	return nil
}
