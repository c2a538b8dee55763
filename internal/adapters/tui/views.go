package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/xvierd/todo-cli/internal/domain"
)

const (
	defaultWidth  = 80
	maxNotesLines = 3
)

// View renders the list, or the dialog while the editor is open.
func (m Model) View() string {
	if m.editor.IsOpen() {
		return m.viewDialog()
	}
	return m.viewList()
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) viewList() string {
	var sections []string

	sections = append(sections, m.styles.title.Render("Todos"))
	sections = append(sections, "")

	if len(m.items) == 0 {
		sections = append(sections, m.styles.muted.Render("No todos yet"))
	} else {
		for i, todo := range m.items {
			sections = append(sections, m.viewRow(i, todo))
		}
	}

	if m.status.text != "" {
		sections = append(sections, "")
		sections = append(sections, m.styles.danger.Render(m.status.text))
	}

	sections = append(sections, "")
	sections = append(sections, m.help.ShortHelpView(m.keys.listHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewRow(i int, todo *domain.Todo) string {
	width := m.contentWidth() - 6

	titleStyle := m.styles.text
	detailStyle := m.styles.muted
	box := "[ ]"
	if m.completions.IsChecked(todo.ID) {
		box = "[x]"
		titleStyle = m.styles.done.Strikethrough(true)
		if frame, ok := m.fading[todo.ID]; ok {
			c := fadeColor(m.theme.ColorDone, m.theme.ColorBackground, float64(frame)/fadeFrames)
			titleStyle = titleStyle.Foreground(c)
			detailStyle = detailStyle.Foreground(c)
		}
	}

	marker := "  "
	if i == m.cursor {
		marker = m.styles.accent.Render("▸ ")
	}

	var b strings.Builder
	b.WriteString(marker + box + " " + titleStyle.Render(truncate.StringWithTail(todo.Title, uint(max(width, 1)), "…")))

	if todo.HasSchedule() {
		when := domain.FormatDateTimeLayout(todo.Schedule, m.layout)
		rel := domain.RelativeSchedule(todo.Schedule, m.now())
		b.WriteString("\n" + detailStyle.Render(indent.String(when+" · "+rel, 6)))
	}

	if notes := strings.TrimSpace(todo.Notes); notes != "" {
		lines := strings.Split(wordwrap.String(notes, max(width, 10)), "\n")
		if len(lines) > maxNotesLines {
			lines = append(lines[:maxNotesLines-1], lines[maxNotesLines-1]+" …")
		}
		b.WriteString("\n" + detailStyle.Render(indent.String(strings.Join(lines, "\n"), 6)))
	}

	return b.String()
}

func (m Model) viewDialog() string {
	var sections []string

	heading := "New todo"
	if m.editor.TargetID() != "" {
		heading = "Edit todo"
	}
	sections = append(sections, m.styles.title.Render(heading))
	sections = append(sections, "")

	sections = append(sections, m.fieldLabel("Title", fieldTitle))
	sections = append(sections, m.titleInput.View())
	sections = append(sections, "")
	sections = append(sections, m.fieldLabel("Notes", fieldNotes))
	sections = append(sections, m.notesInput.View())
	sections = append(sections, "")

	draft := m.editor.Draft()
	when := m.styles.muted.Render("not set")
	if draft.Schedule != nil {
		when = m.styles.text.Render(domain.FormatDateTimeLayout(draft.Schedule, m.layout))
	}
	sections = append(sections, m.styles.muted.Render("When  ")+when)

	var panels []string
	if m.editor.CalendarVisible() {
		panels = append(panels, m.styles.panel.Render(m.calendar.View(m.styles)))
	}
	if m.editor.TimeListVisible() {
		panels = append(panels, m.styles.panel.Render(m.timeList.View(m.styles)))
	}
	if len(panels) > 0 {
		sections = append(sections, "")
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	}

	if m.status.text != "" {
		sections = append(sections, "")
		sections = append(sections, m.styles.danger.Render(m.status.text))
	}

	sections = append(sections, "")
	sections = append(sections, m.help.ShortHelpView(m.keys.dialogHelp()))

	box := m.styles.dialog.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) fieldLabel(label string, f dialogField) string {
	if m.field == f {
		return m.styles.accent.Render(label)
	}
	return m.styles.muted.Render(label)
}
