package domain

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultDateTimeLayout renders a schedule as e.g. "Fri Mar 15 2024 09:30".
const DefaultDateTimeLayout = "Mon Jan 2 2006 15:04"

// FormatDateTime renders a schedule for display. A nil schedule renders as
// the empty string.
func FormatDateTime(t *time.Time) string {
	return FormatDateTimeLayout(t, DefaultDateTimeLayout)
}

// FormatDateTimeLayout is FormatDateTime with a caller-chosen layout.
func FormatDateTimeLayout(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	if layout == "" {
		layout = DefaultDateTimeLayout
	}
	return t.Format(layout)
}

// RelativeSchedule describes a schedule relative to now ("3 hours from now",
// "2 days ago"). A nil schedule renders as the empty string.
func RelativeSchedule(t *time.Time, now time.Time) string {
	if t == nil {
		return ""
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}
