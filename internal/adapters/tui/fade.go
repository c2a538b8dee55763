package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// fadeFrames is the number of steps a checked row takes to fade out.
const fadeFrames = 8

// fadeFrameMsg advances the fade of one row.
type fadeFrameMsg struct {
	id    string
	frame int
}

// fadeCmd schedules frame of the row's fade. The whole fade spans d.
func fadeCmd(id string, frame int, d time.Duration) tea.Cmd {
	return tea.Tick(d/fadeFrames, func(time.Time) tea.Msg {
		return fadeFrameMsg{id: id, frame: frame}
	})
}

// fadeColor blends from toward to by t in [0,1]. Unparseable colours leave
// from unchanged.
func fadeColor(from, to string, t float64) lipgloss.Color {
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(from)
	}
	t = max(0, min(t, 1))
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
