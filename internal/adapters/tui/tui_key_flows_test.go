package tui

// Key-flow tests drive the model the way a user would, one key at a time,
// so regressions in key dispatch or service wiring fail here.

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/todo-cli/internal/adapters/storage"
	"github.com/xvierd/todo-cli/internal/domain"
	"github.com/xvierd/todo-cli/internal/services"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// Sunday 10 March 2024, 08:00.
var testNow = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func keyPress(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

type fixture struct {
	todos       *services.TodoService
	editor      *services.Editor
	completions *services.Completions
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := storage.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	todos := services.NewTodoService(store)
	return fixture{
		todos:       todos,
		editor:      services.NewEditor(todos),
		completions: services.NewCompletions(todos, 0),
	}
}

// model builds a screen model and runs its initial load.
func (f fixture) model(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), f.todos, f.editor, f.completions, Options{
		TimeStep: 30,
		Now:      func() time.Time { return testNow },
	})
	return update(t, m, m.Init()())
}

func (f fixture) create(t *testing.T, title string) *domain.Todo {
	t.Helper()
	todo, err := f.todos.Create(context.Background(), services.CreateTodoRequest{Title: title})
	require.NoError(t, err)
	return todo
}

func (f fixture) list(t *testing.T) []*domain.Todo {
	t.Helper()
	items, err := f.todos.List(context.Background())
	require.NoError(t, err)
	return items
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	return result.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyPress(k))
	}
	return m
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestModel_EmptyListShowsPlaceholder(t *testing.T) {
	m := newFixture(t).model(t)
	if !strings.Contains(m.View(), "No todos yet") {
		t.Error("empty list should render the placeholder")
	}
}

func TestModel_ListShowsTodosInOrder(t *testing.T) {
	f := newFixture(t)
	f.create(t, "First")
	f.create(t, "Second")
	m := f.model(t)

	view := m.View()
	first := strings.Index(view, "First")
	second := strings.Index(view, "Second")
	require.True(t, first >= 0 && second >= 0, "both rows should render")
	assert.Less(t, first, second)
	assert.NotContains(t, view, "No todos yet")
}

func TestModel_CursorMovesAndClamps(t *testing.T) {
	f := newFixture(t)
	f.create(t, "A")
	f.create(t, "B")
	m := f.model(t)

	m = press(t, m, "up")
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, "down", "down", "j")
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, "k")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_QuitKey(t *testing.T) {
	m := newFixture(t).model(t)
	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("[q] should quit from the list")
	}
}

// ---------------------------------------------------------------------------
// Add / edit dialog
// ---------------------------------------------------------------------------

func TestModel_AddTodo(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a")
	require.True(t, f.editor.IsOpen(), "[a] should open the dialog")
	assert.Contains(t, m.View(), "New todo")

	m = press(t, m, "Buy milk", "enter")

	assert.False(t, f.editor.IsOpen(), "enter on the title should save and close")
	items := f.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Title)
	assert.Empty(t, items[0].Notes)
	assert.Nil(t, items[0].Schedule)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestModel_AddTodoWithNotes(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "Call plumber", "tab", "ask about the leak", "ctrl+s")
	_ = m

	items := f.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, "Call plumber", items[0].Title)
	assert.Equal(t, "ask about the leak", items[0].Notes)
}

func TestModel_SaveEmptyTitleShowsStatus(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "   ", "enter")

	assert.True(t, f.editor.IsOpen(), "dialog should stay open")
	assert.Empty(t, f.list(t))
	assert.Contains(t, m.View(), "Title is required")

	m = press(t, m, "x")
	assert.NotContains(t, m.View(), "Title is required", "status clears on the next key")
}

func TestModel_EditTodo(t *testing.T) {
	f := newFixture(t)
	todo := f.create(t, "Old")
	m := f.model(t)

	m = press(t, m, "e")
	require.Equal(t, services.EditorEdit, f.editor.Mode())
	assert.Equal(t, todo.ID, f.editor.TargetID())
	assert.Equal(t, "Old", f.editor.Draft().Title, "draft should be seeded from the record")
	assert.Contains(t, m.View(), "Edit todo")

	m = press(t, m, " title", "enter")
	_ = m

	items := f.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, todo.ID, items[0].ID)
	assert.Equal(t, "Old title", items[0].Title)
}

func TestModel_CancelLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Keep")
	m := f.model(t)

	m = press(t, m, "e", "zzz", "esc")

	assert.False(t, f.editor.IsOpen())
	items := f.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, "Keep", items[0].Title)
	assert.Contains(t, m.View(), "Keep")
}

func TestModel_EditVanishedTodo(t *testing.T) {
	f := newFixture(t)
	todo := f.create(t, "Ghost")
	m := f.model(t)

	require.NoError(t, f.todos.Delete(context.Background(), todo.ID))
	m = press(t, m, "e")

	assert.False(t, f.editor.IsOpen())
	view := m.View()
	assert.Contains(t, view, "no longer exists")
	assert.Contains(t, view, "No todos yet")
}

// ---------------------------------------------------------------------------
// Calendar and time list
// ---------------------------------------------------------------------------

func TestModel_PickDayThenTime(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "Dentist", "ctrl+d")
	require.True(t, f.editor.CalendarVisible())
	assert.Contains(t, m.View(), "March 2024")

	m = press(t, m, "right", "right", "right", "right", "right", "enter")
	assert.False(t, f.editor.CalendarVisible(), "picking a day closes the calendar")
	schedule := f.editor.Draft().Schedule
	require.NotNil(t, schedule)
	assert.True(t, schedule.Equal(time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)),
		"time of day defaults to now, got %v", schedule)

	m = press(t, m, "ctrl+t")
	require.True(t, f.editor.TimeListVisible())
	assert.Equal(t, "08:00", m.timeList.Current(), "list starts at the draft time")

	m = press(t, m, "0", "9", "3", "0", "enter")
	assert.False(t, f.editor.TimeListVisible(), "picking a slot closes the time list")
	want := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	assert.True(t, f.editor.Draft().Schedule.Equal(want))
	assert.Contains(t, m.View(), "Fri Mar 15 2024 09:30")

	m = press(t, m, "ctrl+s")
	items := f.list(t)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Schedule)
	assert.True(t, items[0].Schedule.Equal(want))
	assert.Contains(t, m.View(), "Fri Mar 15 2024 09:30")
}

func TestModel_PickTimeWithoutDayUsesToday(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "Standup", "ctrl+t", "down", "enter")
	_ = m

	schedule := f.editor.Draft().Schedule
	require.NotNil(t, schedule)
	assert.True(t, schedule.Equal(time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)))
}

func TestModel_ClearSchedule(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "Trip", "ctrl+d", "enter")
	require.NotNil(t, f.editor.Draft().Schedule)

	m = press(t, m, "ctrl+t", "ctrl+x")
	assert.Nil(t, f.editor.Draft().Schedule)
	assert.True(t, f.editor.TimeListVisible(), "clearing leaves the panels alone")
	assert.Contains(t, m.View(), "not set")

	m = press(t, m, "esc", "ctrl+s")
	_ = m
	items := f.list(t)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Schedule)
}

func TestModel_EscClosesPanelBeforeDialog(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "ctrl+d", "esc")
	assert.False(t, f.editor.CalendarVisible())
	assert.True(t, f.editor.IsOpen(), "first esc only closes the calendar")

	m = press(t, m, "esc")
	_ = m
	assert.False(t, f.editor.IsOpen())
}

func TestModel_PanelsToggleIndependently(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "a", "ctrl+d", "ctrl+t")
	assert.True(t, f.editor.CalendarVisible())
	assert.True(t, f.editor.TimeListVisible())

	m = press(t, m, "ctrl+d")
	_ = m
	assert.False(t, f.editor.CalendarVisible())
	assert.True(t, f.editor.TimeListVisible())
}

// ---------------------------------------------------------------------------
// Completion and delete
// ---------------------------------------------------------------------------

func TestModel_CompleteTwiceDeletesOnce(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "A")
	b := f.create(t, "B")
	m := f.model(t)

	result, cmd := m.Update(keyPress("x"))
	m = result.(Model)
	require.NotNil(t, cmd, "first check starts the fade")
	assert.True(t, f.completions.IsChecked(a.ID))
	assert.Contains(t, m.View(), "[x] A")

	result, cmd = m.Update(keyPress("x"))
	m = result.(Model)
	assert.Nil(t, cmd, "second check must not start another fade")

	result, cmd = m.Update(fadeFrameMsg{id: a.ID, frame: 3})
	m = result.(Model)
	assert.NotNil(t, cmd, "mid-fade frames schedule the next one")
	assert.Len(t, f.list(t), 2, "nothing is removed before the fade ends")

	m = update(t, m, fadeFrameMsg{id: a.ID, frame: fadeFrames})
	m = update(t, m, fadeFrameMsg{id: a.ID, frame: fadeFrames})

	items := f.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
	assert.NotContains(t, m.View(), "[x] A")
}

func TestModel_CheckedRowCannotBeEdited(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Done soon")
	m := f.model(t)

	m = press(t, m, "x", "e")
	_ = m
	assert.False(t, f.editor.IsOpen())
}

func TestModel_DeleteKey(t *testing.T) {
	f := newFixture(t)
	f.create(t, "A")
	b := f.create(t, "B")
	m := f.model(t)

	m = press(t, m, "d")
	items := f.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)

	m = press(t, m, "d", "d")
	assert.Empty(t, f.list(t))
	assert.Contains(t, m.View(), "No todos yet")
}

func TestModel_DeleteDuringFadeCancelsIt(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "A")
	f.create(t, "B")
	m := f.model(t)

	m = press(t, m, "x", "d")
	require.Len(t, f.list(t), 1)
	assert.False(t, f.completions.IsChecked(a.ID))

	m = update(t, m, fadeFrameMsg{id: a.ID, frame: fadeFrames})
	_ = m
	assert.Len(t, f.list(t), 1, "a late fade frame deletes nothing else")
}
