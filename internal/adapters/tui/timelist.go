package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/todo-cli/internal/domain"
	"github.com/xvierd/todo-cli/internal/ports"
)

const (
	timeListHeight = 7
	maxSlotQuery   = 4
)

// TimeList is the scrollable slot list of the edit dialog. Typing digits
// jumps to the closest slot, e.g. "930" lands on 09:30. It implements
// ports.TimePicker.
type TimeList struct {
	slots    []string
	cursor   int
	query    string
	onSelect ports.SlotSelectFunc
}

var _ ports.TimePicker = (*TimeList)(nil)

// NewTimeList creates a list over the given slots.
func NewTimeList(slots []string) *TimeList {
	l := &TimeList{}
	l.SetSlots(slots)
	return l
}

// SetSlots replaces the selectable slots and resets the cursor.
func (l *TimeList) SetSlots(slots []string) {
	l.slots = append([]string(nil), slots...)
	l.cursor = 0
	l.query = ""
}

// SetOnSelect sets the callback fired when enter is pressed on a slot.
func (l *TimeList) SetOnSelect(fn ports.SlotSelectFunc) {
	l.onSelect = fn
}

// Current returns the slot under the cursor, or "" when there are none.
func (l *TimeList) Current() string {
	if len(l.slots) == 0 {
		return ""
	}
	return l.slots[l.cursor]
}

// MoveTo puts the cursor on the last slot not later than t's time of day.
func (l *TimeList) MoveTo(t time.Time) {
	l.query = ""
	target := t.Hour()*60 + t.Minute()
	l.cursor = 0
	for i, slot := range l.slots {
		h, m, err := domain.ParseTimeSlot(slot)
		if err != nil {
			continue
		}
		if h*60+m > target {
			break
		}
		l.cursor = i
	}
}

// Update handles a key press and reports whether it was consumed.
func (l *TimeList) Update(msg tea.KeyMsg) bool {
	if len(l.slots) == 0 {
		return false
	}

	s := msg.String()
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		l.typeDigit(s)
		return true
	}

	switch s {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.slots)-1 {
			l.cursor++
		}
	case "home", "g":
		l.cursor = 0
	case "end", "G":
		l.cursor = len(l.slots) - 1
	case "backspace":
		if l.query != "" {
			l.query = l.query[:len(l.query)-1]
			if l.query != "" {
				l.jump()
			}
		}
		return true
	case "enter":
		l.query = ""
		if l.onSelect != nil {
			l.onSelect(l.slots[l.cursor])
		}
		return true
	default:
		return false
	}
	l.query = ""
	return true
}

func (l *TimeList) typeDigit(d string) {
	if len(l.query) >= maxSlotQuery {
		l.query = ""
	}
	l.query += d
	if !l.jump() {
		l.query = d
		l.jump()
	}
}

// jump moves the cursor to the best fuzzy match of the typed digits. Ties go
// to the earliest slot.
func (l *TimeList) jump() bool {
	matches := fuzzy.Find(l.query, l.slots)
	if len(matches) == 0 {
		return false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score > best.Score || (m.Score == best.Score && m.Index < best.Index) {
			best = m
		}
	}
	l.cursor = best.Index
	return true
}

// View renders a window of slots around the cursor.
func (l *TimeList) View(st styles) string {
	var b strings.Builder

	b.WriteString(st.title.Render("Time") + "\n")

	start := l.cursor - timeListHeight/2
	if start > len(l.slots)-timeListHeight {
		start = len(l.slots) - timeListHeight
	}
	if start < 0 {
		start = 0
	}
	end := min(start+timeListHeight, len(l.slots))

	for i := start; i < end; i++ {
		if i == l.cursor {
			b.WriteString(st.accent.Render("▸ "+l.slots[i]) + "\n")
		} else {
			b.WriteString(st.muted.Render("  "+l.slots[i]) + "\n")
		}
	}

	hint := "↑/↓ move · 0-9 jump · enter pick · esc close"
	if l.query != "" {
		hint = fmt.Sprintf("jump: %s", l.query)
	}
	b.WriteString(st.muted.Render(hint))
	return b.String()
}
