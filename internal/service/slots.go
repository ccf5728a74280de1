package service

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlotIncrementMinutes is the bookable increment applied when
// the configuration does not override it.
const DefaultSlotIncrementMinutes = 30

// TimeOfDay is a clock time within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a 24h "HH:MM" value. A trailing seconds field
// ("HH:MM:SS", as produced by Postgres time columns) is tolerated and
// ignored.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("malformed time of day %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("malformed hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("malformed minute in %q", raw)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", raw)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// Add advances by the given number of minutes, rolling minute overflow
// into the hour field.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	total := t.Minute + minutes
	return TimeOfDay{Hour: t.Hour + total/60, Minute: total % 60}
}

// String renders the zero-padded HH:MM form. Lexicographic order on
// this form equals chronological order within a day.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// GenerateSlots emits slot start times from start up to, but excluding,
// end, stepping by incrementMinutes. A start is emitted whenever it is
// strictly before end; the last start's nominal end may pass the range
// end when the range is not a whole number of increments. Slots are
// bookable starts, duration checks happen at booking time.
//
// An inverted range (start >= end) or a non-positive increment yields
// no slots.
func GenerateSlots(start, end TimeOfDay, incrementMinutes int) []string {
	if incrementMinutes <= 0 {
		return nil
	}
	var slots []string
	for cur := start; cur.Before(end); cur = cur.Add(incrementMinutes) {
		slots = append(slots, cur.String())
	}
	return slots
}
