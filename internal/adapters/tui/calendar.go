package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/todo-cli/internal/ports"
)

// Calendar is the month grid of the edit dialog. It implements ports.DatePicker.
type Calendar struct {
	year  int
	month time.Month
	day   int

	selected *time.Time
	today    func() time.Time
	onSelect ports.DaySelectFunc
}

var _ ports.DatePicker = (*Calendar)(nil)

// NewCalendar creates a calendar with the cursor on today.
func NewCalendar(today func() time.Time) *Calendar {
	if today == nil {
		today = time.Now
	}
	c := &Calendar{today: today}
	c.SetSelected(nil)
	return c
}

// SetSelected highlights t and moves the cursor to it. A nil t clears the
// highlight and puts the cursor on today.
func (c *Calendar) SetSelected(t *time.Time) {
	anchor := c.today()
	c.selected = nil
	if t != nil {
		v := *t
		c.selected = &v
		anchor = v
	}
	c.year, c.month, c.day = anchor.Date()
}

// SetOnSelect sets the callback fired when enter is pressed on a day.
func (c *Calendar) SetOnSelect(fn ports.DaySelectFunc) {
	c.onSelect = fn
}

// Cursor returns the date under the cursor.
func (c *Calendar) Cursor() (int, time.Month, int) {
	return c.year, c.month, c.day
}

// Update handles a key press and reports whether it was consumed.
func (c *Calendar) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left", "h":
		c.moveDays(-1)
	case "right", "l":
		c.moveDays(1)
	case "up", "k":
		c.moveDays(-7)
	case "down", "j":
		c.moveDays(7)
	case "[", "pgup":
		c.moveMonths(-1)
	case "]", "pgdown":
		c.moveMonths(1)
	case "enter":
		if c.onSelect != nil {
			c.onSelect(c.year, c.month, c.day)
		}
	default:
		return false
	}
	return true
}

func (c *Calendar) moveDays(n int) {
	next := time.Date(c.year, c.month, c.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	c.year, c.month, c.day = next.Date()
}

func (c *Calendar) moveMonths(n int) {
	mo := int(c.month) + n
	y := c.year
	for mo < 1 {
		mo += 12
		y--
	}
	for mo > 12 {
		mo -= 12
		y++
	}
	c.year, c.month = y, time.Month(mo)
	c.day = clampDay(y, c.month, c.day)
}

func (c *Calendar) isSelected(day int) bool {
	if c.selected == nil {
		return false
	}
	y, m, d := c.selected.Date()
	return y == c.year && m == c.month && d == day
}

// View renders the month grid, weeks starting on Sunday.
func (c *Calendar) View(st styles) string {
	var b strings.Builder

	b.WriteString(st.title.Render(fmt.Sprintf("%s %d", c.month, c.year)) + "\n")
	b.WriteString(st.muted.Render("Su Mo Tu We Th Fr Sa") + "\n")

	ty, tm, td := c.today().Date()
	offset := int(time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	b.WriteString(strings.Repeat("   ", offset))

	last := daysInMonth(c.year, c.month)
	for d := 1; d <= last; d++ {
		label := fmt.Sprintf("%2d", d)
		switch {
		case d == c.day:
			label = st.cursor.Render(label)
		case c.isSelected(d):
			label = st.selected.Render(label)
		case ty == c.year && tm == c.month && td == d:
			label = st.accent.Render(label)
		default:
			label = st.text.Render(label)
		}
		b.WriteString(label)
		if (offset+d)%7 == 0 || d == last {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	b.WriteString(st.muted.Render("←→↑↓ day · [ ] month · enter pick · esc close"))
	return b.String()
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	if last := daysInMonth(y, m); d > last {
		return last
	}
	return d
}
