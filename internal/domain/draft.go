package domain

import "time"

// Draft holds the uncommitted field values of the add/edit dialog.
type Draft struct {
	Title    string
	Notes    string
	Schedule *time.Time
}

// DraftFromTodo seeds a draft with the current values of a todo.
func DraftFromTodo(t *Todo) Draft {
	return Draft{
		Title:    t.Title,
		Notes:    t.Notes,
		Schedule: cloneTime(t.Schedule),
	}
}

// SelectDay sets the calendar date of the schedule. The time of day is kept
// when a schedule already exists, otherwise it is taken from now.
func (d *Draft) SelectDay(year int, month time.Month, day int, now time.Time) {
	base := now
	if d.Schedule != nil {
		base = *d.Schedule
	}
	t := time.Date(year, month, day,
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())
	d.Schedule = &t
}

// SelectTime sets the time of day of the schedule from an "HH:MM" slot.
// The date is kept when a schedule already exists, otherwise it is today.
func (d *Draft) SelectTime(slot string, now time.Time) error {
	hour, minute, err := ParseTimeSlot(slot)
	if err != nil {
		return err
	}
	base := now
	if d.Schedule != nil {
		base = *d.Schedule
	}
	t := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
	d.Schedule = &t
	return nil
}

// Clear removes the schedule.
func (d *Draft) Clear() {
	d.Schedule = nil
}

// Clone returns a copy that doesn't share the schedule pointer.
func (d Draft) Clone() Draft {
	d.Schedule = cloneTime(d.Schedule)
	return d
}
