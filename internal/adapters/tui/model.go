package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/xvierd/todo-cli/internal/config"
	"github.com/xvierd/todo-cli/internal/domain"
	"github.com/xvierd/todo-cli/internal/services"
)

const (
	msgTitleRequired = "Title is required"
	msgTodoGone      = "That todo no longer exists"
)

// Options configures the screen.
type Options struct {
	// TimeStep is the minute spacing of the time list.
	TimeStep int
	// DateTimeLayout formats schedules. Empty means domain.DefaultDateTimeLayout.
	DateTimeLayout string
	Theme          *config.ThemeConfig
	Now            func() time.Time
	Logger         *log.Logger
}

type dialogField int

const (
	fieldTitle dialogField = iota
	fieldNotes
)

// todosMsg carries a list snapshot fetched asynchronously.
type todosMsg struct {
	items []*domain.Todo
	err   error
}

// statusLine is shared with the service callbacks, which cannot reach the
// model value.
type statusLine struct {
	text string
}

func (s *statusLine) set(text string) { s.text = text }
func (s *statusLine) clear()          { s.text = "" }

// Model represents the to-do screen state.
type Model struct {
	ctx         context.Context
	todos       *services.TodoService
	editor      *services.Editor
	completions *services.Completions
	logger      *log.Logger
	now         func() time.Time
	layout      string

	theme  config.ThemeConfig
	styles styles
	keys   keyMap
	help   help.Model

	items  []*domain.Todo
	cursor int
	fading map[string]int
	status *statusLine
	width  int
	height int

	titleInput textinput.Model
	notesInput textarea.Model
	field      dialogField
	calendar   *Calendar
	timeList   *TimeList
}

// NewModel creates the screen model. The editor's validation hook and the
// picker callbacks are wired to the model here.
func NewModel(ctx context.Context, todos *services.TodoService, editor *services.Editor, completions *services.Completions, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	slots, err := domain.GenerateTimeSlots(opts.TimeStep)
	if err != nil {
		opts.Logger.Warn("invalid time step, using default", "step", opts.TimeStep, "err", err)
		slots, _ = domain.GenerateTimeSlots(domain.DefaultTimeStep)
	}

	theme := resolveTheme(opts.Theme)
	status := &statusLine{}
	logger := opts.Logger

	editor.SetClock(opts.Now)
	editor.SetValidationHook(func(error) {
		status.set(msgTitleRequired)
	})

	calendar := NewCalendar(opts.Now)
	calendar.SetOnSelect(func(year int, month time.Month, day int) {
		if err := editor.SelectDay(year, month, day); err != nil {
			logger.Warn("day not applied", "err", err)
		}
	})

	timeList := NewTimeList(slots)
	timeList.SetOnSelect(func(slot string) {
		if err := editor.SelectTime(slot); err != nil {
			logger.Warn("time not applied", "slot", slot, "err", err)
			status.set(err.Error())
		}
	})

	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 120
	ti.Width = 48

	ta := textarea.New()
	ta.Placeholder = "Notes"
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(3)

	return Model{
		ctx:         ctx,
		todos:       todos,
		editor:      editor,
		completions: completions,
		logger:      logger,
		now:         opts.Now,
		layout:      opts.DateTimeLayout,
		theme:       theme,
		styles:      newStyles(theme),
		keys:        defaultKeyMap(),
		help:        help.New(),
		fading:      make(map[string]int),
		status:      status,
		titleInput:  ti,
		notesInput:  ta,
		calendar:    calendar,
		timeList:    timeList,
	}
}

// Init loads the list.
func (m Model) Init() tea.Cmd {
	return loadTodosCmd(m.ctx, m.todos)
}

// loadTodosCmd returns a tea.Cmd that fetches the list asynchronously.
func loadTodosCmd(ctx context.Context, todos *services.TodoService) tea.Cmd {
	return func() tea.Msg {
		items, err := todos.List(ctx)
		return todosMsg{items: items, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case todosMsg:
		m.applyTodos(msg.items, msg.err)
		return m, nil

	case fadeFrameMsg:
		return m.updateFade(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status.clear()
		if m.editor.IsOpen() {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)
	}

	// Cursor blink and other input internals.
	if m.editor.IsOpen() {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		if err := m.editor.OpenCreate(); err != nil {
			m.status.set(err.Error())
			return m, nil
		}
		cmd := m.openDialog()
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		todo := m.selected()
		if todo == nil || m.completions.IsChecked(todo.ID) {
			return m, nil
		}
		if err := m.editor.OpenEdit(m.ctx, todo.ID); err != nil {
			if errors.Is(err, domain.ErrTodoNotFound) {
				m.status.set(msgTodoGone)
			} else {
				m.status.set(err.Error())
			}
			m.refresh()
			return m, nil
		}
		cmd := m.openDialog()
		return m, cmd

	case key.Matches(msg, m.keys.Complete):
		todo := m.selected()
		if todo == nil || !m.completions.Check(todo.ID) {
			return m, nil
		}
		m.fading[todo.ID] = 0
		m.logger.Debug("todo checked", "id", todo.ID)
		return m, fadeCmd(todo.ID, 1, m.completions.FadeDuration())

	case key.Matches(msg, m.keys.Delete):
		todo := m.selected()
		if todo == nil {
			return m, nil
		}
		m.completions.Forget(todo.ID)
		delete(m.fading, todo.ID)
		if err := m.todos.Delete(m.ctx, todo.ID); err != nil {
			m.status.set(fmt.Sprintf("Error: %v", err))
		}
		m.refresh()
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Calendar):
		_ = m.editor.ToggleCalendar()
		if m.editor.CalendarVisible() {
			m.calendar.SetSelected(m.editor.Draft().Schedule)
		}
		return m, nil

	case key.Matches(msg, m.keys.TimeList):
		_ = m.editor.ToggleTimeList()
		if m.editor.TimeListVisible() {
			at := m.now()
			if s := m.editor.Draft().Schedule; s != nil {
				at = *s
			}
			m.timeList.MoveTo(at)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearSchedule):
		_ = m.editor.ClearSchedule()
		return m, nil
	}

	if m.editor.CalendarVisible() {
		if key.Matches(msg, m.keys.Cancel) {
			_ = m.editor.ToggleCalendar()
		} else {
			m.calendar.Update(msg)
		}
		return m, nil
	}
	if m.editor.TimeListVisible() {
		if key.Matches(msg, m.keys.Cancel) {
			_ = m.editor.ToggleTimeList()
		} else {
			m.timeList.Update(msg)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.Cancel()
		m.closeDialog()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusField((m.field + 1) % 2)
		return m, cmd

	case msg.Type == tea.KeyEnter && m.field == fieldTitle:
		return m.save()
	}

	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused input and mirrors its value into
// the draft.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		_ = m.editor.SetTitle(m.titleInput.Value())
	case fieldNotes:
		m.notesInput, cmd = m.notesInput.Update(msg)
		_ = m.editor.SetNotes(m.notesInput.Value())
	}
	return m, cmd
}

func (m Model) save() (tea.Model, tea.Cmd) {
	_ = m.editor.SetTitle(m.titleInput.Value())
	_ = m.editor.SetNotes(m.notesInput.Value())

	todo, err := m.editor.Save(m.ctx)
	switch {
	case errors.Is(err, domain.ErrEmptyTodoTitle):
		// The validation hook has set the status; the dialog stays open.
		return m, nil
	case errors.Is(err, domain.ErrTodoNotFound):
		m.status.set(msgTodoGone)
	case err != nil:
		m.status.set(fmt.Sprintf("Error: %v", err))
		return m, nil
	}

	m.closeDialog()
	m.refresh()
	if todo != nil {
		for i, item := range m.items {
			if item.ID == todo.ID {
				m.cursor = i
				break
			}
		}
	}
	return m, nil
}

func (m Model) updateFade(msg fadeFrameMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.fading[msg.id]; !ok {
		return m, nil
	}
	if msg.frame < fadeFrames {
		m.fading[msg.id] = msg.frame
		return m, fadeCmd(msg.id, msg.frame+1, m.completions.FadeDuration())
	}

	delete(m.fading, msg.id)
	if err := m.completions.Finish(m.ctx, msg.id); err != nil {
		m.status.set(fmt.Sprintf("Error: %v", err))
	}
	m.refresh()
	return m, nil
}

// openDialog seeds the inputs from the editor draft and focuses the title.
func (m *Model) openDialog() tea.Cmd {
	draft := m.editor.Draft()
	m.titleInput.SetValue(draft.Title)
	m.titleInput.CursorEnd()
	m.notesInput.SetValue(draft.Notes)
	return m.focusField(fieldTitle)
}

func (m *Model) closeDialog() {
	m.titleInput.Blur()
	m.notesInput.Blur()
	m.titleInput.Reset()
	m.notesInput.Reset()
	m.field = fieldTitle
}

func (m *Model) focusField(f dialogField) tea.Cmd {
	m.field = f
	if f == fieldNotes {
		m.titleInput.Blur()
		return m.notesInput.Focus()
	}
	m.notesInput.Blur()
	return m.titleInput.Focus()
}

func (m *Model) refresh() {
	items, err := m.todos.List(m.ctx)
	m.applyTodos(items, err)
}

func (m *Model) applyTodos(items []*domain.Todo, err error) {
	if err != nil {
		m.status.set(fmt.Sprintf("Error: %v", err))
		return
	}
	m.items = items
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() *domain.Todo {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}
