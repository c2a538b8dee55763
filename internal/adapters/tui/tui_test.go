package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/xvierd/todo-cli/internal/config"
)

func TestResolveTheme(t *testing.T) {
	defaults := config.DefaultThemeConfig()

	if got := resolveTheme(nil); got != defaults {
		t.Errorf("nil theme should resolve to defaults, got %+v", got)
	}

	got := resolveTheme(&config.ThemeConfig{ColorAccent: "#FF00FF"})
	if got.ColorAccent != "#FF00FF" {
		t.Errorf("expected custom accent to survive, got %q", got.ColorAccent)
	}
	if got.ColorDone != defaults.ColorDone {
		t.Errorf("expected empty fields to fall back, got %q", got.ColorDone)
	}
}

func TestCalendar_MonthPagingClampsDay(t *testing.T) {
	c := NewCalendar(func() time.Time { return testNow })
	jan31 := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	c.SetSelected(&jan31)

	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	y, m, d := c.Cursor()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
	assert.Equal(t, 29, d, "leap February clamps the day")

	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	y, m, d = c.Cursor()
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)
	assert.Equal(t, 29, d)
}

func TestCalendar_DayMovesCrossMonths(t *testing.T) {
	c := NewCalendar(func() time.Time { return testNow })
	c.SetSelected(nil)

	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	y, m, d := c.Cursor()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
	assert.Equal(t, 25, d)
}

func TestCalendar_EnterFiresCallback(t *testing.T) {
	c := NewCalendar(func() time.Time { return testNow })
	var got []int
	c.SetOnSelect(func(year int, month time.Month, day int) {
		got = []int{year, int(month), day}
	})

	assert.True(t, c.Update(tea.KeyMsg{Type: tea.KeyRight}))
	assert.True(t, c.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, []int{2024, 3, 11}, got)
	assert.False(t, c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}))
}

func TestCalendar_View(t *testing.T) {
	c := NewCalendar(func() time.Time { return testNow })
	view := c.View(newStyles(config.DefaultThemeConfig()))
	assert.Contains(t, view, "March 2024")
	assert.Contains(t, view, "Su Mo Tu We Th Fr Sa")
	assert.Contains(t, view, "31")
}

func TestTimeList_Navigation(t *testing.T) {
	l := NewTimeList([]string{"00:00", "06:00", "12:00", "18:00"})

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "00:00", l.Current())

	for range 10 {
		l.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, "18:00", l.Current())

	l.MoveTo(time.Date(2024, 1, 1, 11, 59, 0, 0, time.UTC))
	assert.Equal(t, "06:00", l.Current())
}

func TestTimeList_DigitJump(t *testing.T) {
	slots := []string{"08:00", "08:30", "09:00", "09:30", "19:30"}

	tests := []struct {
		name  string
		typed string
		want  string
	}{
		{name: "hour prefix", typed: "09", want: "09:00"},
		{name: "full time", typed: "0930", want: "09:30"},
		{name: "short form", typed: "930", want: "09:30"},
		{name: "no match restarts", typed: "0877", want: "08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewTimeList(slots)
			for _, r := range tt.typed {
				l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
			assert.Equal(t, tt.want, l.Current())
		})
	}
}

func TestTimeList_EnterFiresCallback(t *testing.T) {
	l := NewTimeList([]string{"10:00", "10:30"})
	var picked string
	l.SetOnSelect(func(slot string) { picked = slot })

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "10:30", picked)
}

func TestFadeColor(t *testing.T) {
	from, to := "#28A745", "#111827"

	mid := fadeColor(from, to, 0.5)
	assert.NotEqual(t, lipgloss.Color(from), mid)
	assert.NotEqual(t, lipgloss.Color(to), mid)

	assert.Equal(t, lipgloss.Color("not-a-colour"), fadeColor("not-a-colour", to, 0.5))
	assert.Equal(t, lipgloss.Color(from), fadeColor(from, "nope", 0.5))
}
