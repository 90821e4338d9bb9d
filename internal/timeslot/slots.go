package timeslot

import "fmt"

// Granularity is the fixed step, in minutes, at which candidate start times
// are offered.
const Granularity = 5

// Window is a barber's working hours for one date, already reduced to
// minute-of-day form. An Exit of zero is the stored midnight sentinel and
// means the window runs to the end of the day, not that it closes at 00:00.
type Window struct {
	Entry TimeOfDay
	Exit  TimeOfDay
}

// EffectiveExit resolves the midnight sentinel: a stored exit of 00:00 acts
// as minute 1440 for interval math while still displaying as "12:00 AM".
func (w Window) EffectiveExit() TimeOfDay {
	if w.Exit == 0 {
		return MinutesPerDay
	}
	return w.Exit
}

// Empty reports whether the window holds no usable time.
func (w Window) Empty() bool {
	return w.Entry >= w.EffectiveExit()
}

// BeforeOpeningError rejects a start time ahead of the window entry.
type BeforeOpeningError struct {
	Opening TimeOfDay
}

func (e *BeforeOpeningError) Error() string {
	return fmt.Sprintf("the barber does not start until %s", e.Opening.Format12Hour())
}

// PastClosingError rejects a booking whose full duration runs past the
// effective closing time.
type PastClosingError struct {
	Closing  TimeOfDay
	Duration int
}

func (e *PastClosingError) Error() string {
	return fmt.Sprintf("a %s service does not fit before closing time at %s",
		FormatDuration(e.Duration), e.Closing.Format12Hour())
}

// TakenError rejects a booking that intersects an existing appointment.
type TakenError struct {
	Taken Interval
}

func (e *TakenError) Error() string {
	return fmt.Sprintf("the time is already taken by an appointment from %s to %s",
		e.Taken.Start.Format12Hour(), e.Taken.End.Format12Hour())
}

// AvailableSlots enumerates every candidate start in [Entry, EffectiveExit)
// at the fixed granularity and drops those inside an occupied interval.
// The listing is advisory: it deliberately does not pre-filter candidates
// near closing time by service duration; whether the full service fits is
// re-validated by CanPlace at submission. Output is ascending and
// deterministic; identical inputs always yield identical slices.
func AvailableSlots(w Window, occupied []Interval) []TimeOfDay {
	if w.Empty() {
		return nil
	}

	busy, _ := NormalizeIntervals(occupied)
	exit := w.EffectiveExit()

	var slots []TimeOfDay
	for candidate := w.Entry; candidate < exit; candidate += Granularity {
		taken := false
		for _, iv := range busy {
			if iv.Contains(candidate) {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, candidate)
		}
	}
	return slots
}

// CanPlace is the authoritative fit check shared by the create and reschedule
// paths. It returns nil when a service of the given duration can start at
// start without leaving the window or colliding with an occupied interval.
// Exact abutment with an existing appointment is allowed: a service may begin
// the minute another ends.
func CanPlace(start TimeOfDay, durationMinutes int, w Window, occupied []Interval) error {
	exit := w.EffectiveExit()

	if start < w.Entry {
		return &BeforeOpeningError{Opening: w.Entry}
	}
	if int(start)+durationMinutes > int(exit) {
		return &PastClosingError{Closing: exit, Duration: durationMinutes}
	}

	proposed := Interval{Start: start, End: start + TimeOfDay(durationMinutes)}
	busy, _ := NormalizeIntervals(occupied)
	for _, iv := range busy {
		if proposed.Overlaps(iv) {
			return &TakenError{Taken: iv}
		}
	}
	return nil
}
