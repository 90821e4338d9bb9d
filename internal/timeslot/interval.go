package timeslot

import "sort"

// Interval is a half-open busy range [Start, End) derived from one active
// appointment. Intervals are ephemeral: rebuilt on every availability request,
// never persisted or shared.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t TimeOfDay) bool {
	return iv.Start <= t && t < iv.End
}

// Overlaps reports whether two half-open intervals intersect. Intervals that
// merely touch (iv.End == other.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// NormalizeIntervals sorts the intervals and merges any that overlap into
// their union. Active appointments should never overlap; when they do the
// merged result still blocks the whole affected range, and the second return
// value flags the condition so the caller can log it as a data-integrity bug.
// The input slice is not modified.
func NormalizeIntervals(intervals []Interval) ([]Interval, bool) {
	if len(intervals) == 0 {
		return nil, false
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Interval{sorted[0]}
	conflict := false

	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start < last.End {
			conflict = true
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged, conflict
}
