package datekey

import (
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	day, err := Parse("2026-01-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Weekday() != time.Wednesday {
		t.Fatalf("expected Wednesday, got %v", day.Weekday())
	}
	if got := Format(day); got != "2026-01-28" {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, key := range []string{"", "2026-1-28", "2026-02-30", "28-01-2026", "2026/01/28"} {
		if _, err := Parse(key); err == nil {
			t.Fatalf("expected error for %q", key)
		}
	}
}

func TestStartOfWeekMonday(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "monday maps to itself", key: "2026-01-26", want: "2026-01-26"},
		{name: "wednesday", key: "2026-01-28", want: "2026-01-26"},
		{name: "friday", key: "2026-01-30", want: "2026-01-26"},
		{name: "saturday", key: "2026-01-31", want: "2026-01-26"},
		{name: "sunday belongs to preceding monday", key: "2026-02-01", want: "2026-01-26"},
		{name: "next monday starts a new week", key: "2026-02-02", want: "2026-02-02"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			day, err := Parse(tc.key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := Format(StartOfWeekMonday(day)); got != tc.want {
				t.Fatalf("StartOfWeekMonday(%s) = %s, want %s", tc.key, got, tc.want)
			}
		})
	}
}

func TestWeekendAndFriday(t *testing.T) {
	sat, _ := Parse("2026-01-31")
	sun, _ := Parse("2026-02-01")
	fri, _ := Parse("2026-01-30")
	wed, _ := Parse("2026-01-28")

	if !IsWeekend(sat) || !IsWeekend(sun) {
		t.Fatal("expected saturday and sunday to be weekend")
	}
	if IsWeekend(fri) || IsWeekend(wed) {
		t.Fatal("weekday flagged as weekend")
	}
	if !IsFriday(fri) || IsFriday(wed) {
		t.Fatal("friday detection wrong")
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2026, time.January, 28, 15, 42, 9, 12345, time.Local)
	today := Today(now)
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Fatalf("Today should be midnight, got %v", today)
	}
	if Format(today) != "2026-01-28" {
		t.Fatalf("unexpected day: %v", today)
	}
}
