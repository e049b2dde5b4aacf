// Package datekey handles the canonical YYYY-MM-DD calendar keys used to join
// users, selections and calendar rules. Keys are always interpreted in local
// time; lexical ordering of keys matches chronological ordering, which the
// stores rely on for range queries.
package datekey

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Parse converts a date key into local midnight of that day. The key must be
// calendar-valid, not just well-formed.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns local midnight of now's day.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// StartOfWeekMonday returns local midnight of the Monday of t's week, where
// weeks run Monday through Sunday.
func StartOfWeekMonday(t time.Time) time.Time {
	day := Today(t)
	diff := int(time.Monday - day.Weekday())
	if day.Weekday() == time.Sunday {
		diff = -6
	}
	return day.AddDate(0, 0, diff)
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func IsFriday(t time.Time) bool {
	return t.Weekday() == time.Friday
}
