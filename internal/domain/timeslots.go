package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTimeStep is the spacing, in minutes, of the time-list slots.
const DefaultTimeStep = 15

const minutesPerDay = 24 * 60

// GenerateTimeSlots returns every time of day at the given step, starting at
// 00:00 and stopping before midnight, formatted as zero-padded "HH:MM".
func GenerateTimeSlots(stepMinutes int) ([]string, error) {
	if stepMinutes <= 0 || stepMinutes > minutesPerDay {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidTimeStep, stepMinutes)
	}

	slots := make([]string, 0, (minutesPerDay+stepMinutes-1)/stepMinutes)
	for m := 0; m < minutesPerDay; m += stepMinutes {
		slots = append(slots, formatSlot(m/60, m%60))
	}
	return slots, nil
}

// ParseTimeSlot splits an "HH:MM" slot into hour and minute.
func ParseTimeSlot(slot string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(slot), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, slot)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, slot)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, slot)
	}
	return hour, minute, nil
}

func formatSlot(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
