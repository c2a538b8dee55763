// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/todo-cli/internal/config"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles are the lipgloss styles derived from a resolved theme.
type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	danger   lipgloss.Style
	done     lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	dialog   lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	accent := lipgloss.Color(theme.ColorAccent)
	border := lipgloss.Color(theme.ColorBorder)

	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorText)),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorMuted)),
		accent: lipgloss.NewStyle().Foreground(accent).Bold(true),
		danger: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorDanger)),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorDone)),
		cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ColorBackground)).
			Background(accent).
			Bold(true),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorDone)).Bold(true),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}
