package calendar

import (
	"time"

	"pantry/internal/platform/datekey"
)

// SnacksAvailable decides whether the snack field may be non-null on day.
// Weekends are never snack days, no matter what the config says. An exact-date
// override beats the weekday defaults.
func SnacksAvailable(cfg Config, day time.Time) bool {
	if datekey.IsWeekend(day) {
		return false
	}

	key := datekey.Format(day)
	for _, ov := range cfg.Overrides {
		if ov.DateKey == key {
			return ov.SnacksAvailable
		}
	}

	weekday := int(day.Weekday())
	for _, wd := range cfg.DefaultSnackWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}
