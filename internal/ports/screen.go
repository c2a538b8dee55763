package ports

import (
	"context"
	"time"
)

// DaySelectFunc receives the calendar day the user picked.
type DaySelectFunc func(year int, month time.Month, day int)

// SlotSelectFunc receives the "HH:MM" slot the user picked.
type SlotSelectFunc func(slot string)

// DatePicker is the calendar collaborator of the edit dialog.
// This is a driving port (called by the application layer).
type DatePicker interface {
	// SetSelected highlights the currently chosen date, or none when nil.
	SetSelected(t *time.Time)

	// SetOnSelect sets the callback fired when a day is picked.
	SetOnSelect(fn DaySelectFunc)
}

// TimePicker is the time-list collaborator of the edit dialog.
// This is a driving port (called by the application layer).
type TimePicker interface {
	// SetSlots replaces the selectable slots.
	SetSlots(slots []string)

	// SetOnSelect sets the callback fired when a slot is picked.
	SetOnSelect(fn SlotSelectFunc)
}

// Screen is the interactive to-do screen.
type Screen interface {
	// Run shows the screen and blocks until the user quits or ctx is done.
	Run(ctx context.Context) error
}
