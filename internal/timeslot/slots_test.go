package timeslot

import (
	"errors"
	"reflect"
	"testing"
)

func TestAvailableSlotsOpenDay(t *testing.T) {
	// 09:00-18:00, no appointments, 5-minute granularity.
	w := Window{Entry: 540, Exit: 1080}

	slots := AvailableSlots(w, nil)
	if len(slots) != 108 {
		t.Fatalf("expected 108 slots, got %d", len(slots))
	}
	if slots[0] != 540 {
		t.Errorf("first slot = %v, want 09:00 (540)", slots[0])
	}
	if slots[len(slots)-1] != 1075 {
		t.Errorf("last slot = %v, want 17:55 (1075)", slots[len(slots)-1])
	}

	// The listing is advisory: 17:55 is offered even though a 30-minute
	// service starting there would run past closing. The fit check is what
	// rejects it.
	err := CanPlace(1075, 30, w, nil)
	var pastClosing *PastClosingError
	if !errors.As(err, &pastClosing) {
		t.Fatalf("CanPlace(17:55, 30min) error = %v, want PastClosingError", err)
	}
}

func TestAvailableSlotsAroundBooking(t *testing.T) {
	// 09:00-18:00 with one appointment 10:00-10:30.
	w := Window{Entry: 540, Exit: 1080}
	occupied := []Interval{{Start: 600, End: 630}}

	slots := AvailableSlots(w, occupied)

	has := func(m TimeOfDay) bool {
		for _, s := range slots {
			if s == m {
				return true
			}
		}
		return false
	}

	if !has(595) {
		t.Error("09:55 should be offered")
	}
	if !has(630) {
		t.Error("10:30 should be offered (interval end is exclusive)")
	}
	for m := TimeOfDay(600); m < 630; m += Granularity {
		if has(m) {
			t.Errorf("%v lies inside the booking and should not be offered", m)
		}
	}

	// Exact overlap rejected, touching accepted.
	var taken *TakenError
	if err := CanPlace(600, 30, w, occupied); !errors.As(err, &taken) {
		t.Errorf("CanPlace(10:00, 30min) = %v, want TakenError", err)
	}
	if err := CanPlace(630, 30, w, occupied); err != nil {
		t.Errorf("CanPlace(10:30, 30min) should pass when merely touching, got %v", err)
	}
	// A service ending exactly where the booking starts is also allowed.
	if err := CanPlace(570, 30, w, occupied); err != nil {
		t.Errorf("CanPlace(09:30, 30min) ending at 10:00 should pass, got %v", err)
	}
	// Partial overlap from the left is not.
	if err := CanPlace(585, 30, w, occupied); !errors.As(err, &taken) {
		t.Errorf("CanPlace(09:45, 30min) = %v, want TakenError", err)
	}
}

func TestMidnightSentinelExit(t *testing.T) {
	// Exit stored as 00:00 means end of day: enumeration continues to 23:55.
	w := Window{Entry: 1320, Exit: 0} // 22:00-midnight

	slots := AvailableSlots(w, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots for a window closing at midnight")
	}
	if last := slots[len(slots)-1]; last != 1435 {
		t.Errorf("last slot = %v, want 23:55 (1435)", last)
	}

	if err := CanPlace(1410, 30, w, nil); err != nil {
		t.Errorf("23:30 + 30min ends exactly at day end and should fit, got %v", err)
	}
	var pastClosing *PastClosingError
	if err := CanPlace(1415, 30, w, nil); !errors.As(err, &pastClosing) {
		t.Errorf("23:35 + 30min runs past day end, got %v", err)
	}
}

func TestCanPlaceWindowBounds(t *testing.T) {
	w := Window{Entry: 540, Exit: 1080}

	var beforeOpening *BeforeOpeningError
	if err := CanPlace(480, 30, w, nil); !errors.As(err, &beforeOpening) {
		t.Errorf("08:00 start before opening, got %v", err)
	}

	// Any positive duration that crosses the exit fails.
	for _, d := range []int{5, 30, 60, 240} {
		err := CanPlace(1080-TimeOfDay(d)+5, d, w, nil)
		var pastClosing *PastClosingError
		if !errors.As(err, &pastClosing) {
			t.Errorf("duration %d crossing closing time: got %v, want PastClosingError", d, err)
		}
	}

	// Ending exactly at closing time is fine.
	if err := CanPlace(1050, 30, w, nil); err != nil {
		t.Errorf("17:30 + 30min ends at close and should fit, got %v", err)
	}
}

func TestCanPlaceErrorMessages(t *testing.T) {
	w := Window{Entry: 540, Exit: 1080}

	err := CanPlace(1075, 90, w, nil)
	if err == nil {
		t.Fatal("expected PastClosingError")
	}
	want := "a 1h 30min service does not fit before closing time at 06:00 PM"
	if err.Error() != want {
		t.Errorf("PastClosingError message = %q, want %q", err.Error(), want)
	}

	err = CanPlace(600, 30, w, []Interval{{Start: 600, End: 645}})
	if err == nil {
		t.Fatal("expected TakenError")
	}
	want = "the time is already taken by an appointment from 10:00 AM to 10:45 AM"
	if err.Error() != want {
		t.Errorf("TakenError message = %q, want %q", err.Error(), want)
	}
}

func TestAvailableSlotsDeterministic(t *testing.T) {
	w := Window{Entry: 540, Exit: 1080}
	occupied := []Interval{
		{Start: 840, End: 900},
		{Start: 600, End: 630},
	}

	first := AvailableSlots(w, occupied)
	second := AvailableSlots(w, occupied)
	if !reflect.DeepEqual(first, second) {
		t.Error("two identical calls produced different slot lists")
	}

	// Every slot is in-window, off every interval, and strictly ascending.
	prev := TimeOfDay(-1)
	for _, s := range first {
		if s < w.Entry || s >= w.EffectiveExit() {
			t.Errorf("slot %v escapes the window", s)
		}
		for _, iv := range occupied {
			if iv.Contains(s) {
				t.Errorf("slot %v lies inside occupied interval %v-%v", s, iv.Start, iv.End)
			}
		}
		if s <= prev {
			t.Errorf("slots not strictly ascending at %v", s)
		}
		prev = s
	}
}

func TestAvailableSlotsEmptyWindow(t *testing.T) {
	if got := AvailableSlots(Window{Entry: 1080, Exit: 540}, nil); got != nil {
		t.Errorf("inverted window should yield no slots, got %v", got)
	}
	if got := AvailableSlots(Window{Entry: 600, Exit: 600}, nil); got != nil {
		t.Errorf("zero-length window should yield no slots, got %v", got)
	}
}

func TestNormalizeIntervals(t *testing.T) {
	tests := []struct {
		name         string
		in           []Interval
		want         []Interval
		wantConflict bool
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "disjoint unsorted",
			in:   []Interval{{840, 900}, {600, 630}},
			want: []Interval{{600, 630}, {840, 900}},
		},
		{
			name: "touching stays separate",
			in:   []Interval{{600, 630}, {630, 660}},
			want: []Interval{{600, 630}, {630, 660}},
		},
		{
			name:         "overlap merged to union",
			in:           []Interval{{600, 660}, {630, 690}},
			want:         []Interval{{600, 690}},
			wantConflict: true,
		},
		{
			name:         "contained interval absorbed",
			in:           []Interval{{600, 720}, {630, 660}},
			want:         []Interval{{600, 720}},
			wantConflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conflict := NormalizeIntervals(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeIntervals() = %v, want %v", got, tt.want)
			}
			if conflict != tt.wantConflict {
				t.Errorf("conflict = %v, want %v", conflict, tt.wantConflict)
			}
		})
	}
}

func TestOverlapSymmetry(t *testing.T) {
	a := Interval{Start: 600, End: 660}
	cases := []struct {
		b    Interval
		want bool
	}{
		{Interval{630, 690}, true},  // partial right
		{Interval{570, 630}, true},  // partial left
		{Interval{540, 720}, true},  // covers
		{Interval{615, 645}, true},  // contained
		{Interval{660, 720}, false}, // touching right
		{Interval{540, 600}, false}, // touching left
		{Interval{700, 760}, false}, // disjoint
	}
	for _, c := range cases {
		if got := a.Overlaps(c.b); got != c.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", a, c.b, got, c.want)
		}
		if got := c.b.Overlaps(a); got != c.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v (symmetry)", c.b, a, got, c.want)
		}
	}
}
