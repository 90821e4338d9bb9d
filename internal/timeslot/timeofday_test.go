package timeslot

import (
	"errors"
	"testing"
)

func TestParse12Hour(t *testing.T) {
	tests := []struct {
		label   string
		want    TimeOfDay
		wantErr bool
	}{
		{"12:00 AM", 0, false},
		{"12:30 AM", 30, false},
		{"01:00 AM", 60, false},
		{"11:59 AM", 719, false},
		{"12:00 PM", 720, false},
		{"12:45 PM", 765, false},
		{"01:00 PM", 780, false},
		{"06:00 PM", 1080, false},
		{"11:59 PM", 1439, false},
		{"9:05 am", 545, false},
		{"  10:15 PM ", 1335, false},
		{"", 0, true},
		{"09:00", 0, true},          // missing period token
		{"09:00 XM", 0, true},       // bad period
		{"ab:00 AM", 0, true},       // non-numeric hour
		{"09:cd PM", 0, true},       // non-numeric minute
		{"13:00 PM", 0, true},       // hour outside 1..12
		{"00:30 AM", 0, true},       // zero hour is not a 12-hour value
		{"09:75 AM", 0, true},       // minute out of range
		{"09 00 AM", 0, true},       // missing colon
		{"09:00 AM extra", 0, true}, // trailing garbage
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := Parse12Hour(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse12Hour(%q) = %v, want error", tt.label, got)
				}
				if !errors.Is(err, ErrMalformedTime) {
					t.Fatalf("Parse12Hour(%q) error = %v, want ErrMalformedTime", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse12Hour(%q) unexpected error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("Parse12Hour(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestFormat12HourBoundaries(t *testing.T) {
	tests := []struct {
		minute TimeOfDay
		want   string
	}{
		{0, "12:00 AM"},
		{719, "11:59 AM"},
		{720, "12:00 PM"},
		{1439, "11:59 PM"},
		{540, "09:00 AM"},
		{1075, "05:55 PM"},
		{MinutesPerDay, "12:00 AM"}, // interval ends may touch end of day
	}

	for _, tt := range tests {
		if got := tt.minute.Format12Hour(); got != tt.want {
			t.Errorf("Format12Hour(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}

func TestRoundTripAllMinutes(t *testing.T) {
	for m := TimeOfDay(0); m < MinutesPerDay; m++ {
		back, err := Parse12Hour(m.Format12Hour())
		if err != nil {
			t.Fatalf("round trip of %d failed to parse %q: %v", m, m.Format12Hour(), err)
		}
		if back != m {
			t.Fatalf("round trip of %d: got %d via %q", m, back, m.Format12Hour())
		}
	}
}

func TestFromClock(t *testing.T) {
	if _, err := FromClock(24, 0); err == nil {
		t.Error("FromClock(24, 0) should fail")
	}
	if _, err := FromClock(0, 60); err == nil {
		t.Error("FromClock(0, 60) should fail")
	}
	got, err := FromClock(17, 55)
	if err != nil {
		t.Fatalf("FromClock(17, 55) unexpected error: %v", err)
	}
	if got != 1075 {
		t.Errorf("FromClock(17, 55) = %d, want 1075", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0min"},
		{-10, "0min"},
		{30, "30min"},
		{60, "1h"},
		{90, "1h 30min"},
		{125, "2h 5min"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
