package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedTime = errors.New("malformed 12-hour time")
	ErrOutOfRange    = errors.New("time of day out of range")
)

// TimeOfDay is a clock time expressed as minutes since local midnight (0..1439).
// All comparisons and arithmetic in this package operate on this integer form;
// formatted labels exist only at the display boundary.
type TimeOfDay int

const (
	// MinutesPerDay is the exclusive upper bound for a TimeOfDay and the
	// effective exit of a window whose stored exit is the midnight sentinel.
	MinutesPerDay = 24 * 60
)

// FromClock builds a TimeOfDay from 24-hour clock components.
func FromClock(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrOutOfRange
	}
	return TimeOfDay(hour*60 + minute), nil
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// Clock returns the 24-hour clock components of t.
func (t TimeOfDay) Clock() (hour, minute int) {
	return int(t) / 60, int(t) % 60
}

// Parse12Hour parses a label of the shape "hh:mm AM" / "hh:mm PM".
// 12 AM maps to midnight, 12 PM to noon. Malformed input yields an error;
// callers are expected to fall back rather than crash.
func Parse12Hour(label string) (TimeOfDay, error) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}

	period := strings.ToUpper(fields[1])
	if period != "AM" && period != "PM" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, label)
	}

	// 12 AM is the only hour that wraps to zero; 12 PM stays at noon.
	if hour == 12 {
		hour = 0
	}
	if period == "PM" {
		hour += 12
	}

	return TimeOfDay(hour*60 + minute), nil
}

// Format12Hour renders t as a zero-padded 12-hour label, e.g. "09:05 AM".
// Midnight is "12:00 AM" and noon is "12:00 PM". An end-of-day value of 1440,
// as produced by interval ends, wraps back to "12:00 AM".
func (t TimeOfDay) Format12Hour() string {
	hour, minute := t.Clock()
	hour %= 24

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%02d:%02d %s", h12, minute, period)
}

// String renders t in 24-hour "HH:MM" form, mainly for logs.
func (t TimeOfDay) String() string {
	hour, minute := t.Clock()
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatDuration renders a minute count the way the booking UI shows service
// lengths: "45min", "1h", "1h 30min".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0min"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dmin", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dmin", m)
	}
}
