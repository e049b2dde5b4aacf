package calendar

import "time"

// Config is the process-wide snack calendar: the weekday defaults plus exact
// date overrides. There is exactly one row; it is created lazily on first read.
type Config struct {
	ID                   string     `json:"id"`
	DefaultSnackWeekdays []int      `json:"defaultSnackWeekdays"`
	Overrides            []Override `json:"overrides"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type Override struct {
	DateKey         string `json:"dateKey"`
	SnacksAvailable bool   `json:"snacksAvailable"`
}

// DefaultWeekdays is Monday and Wednesday (Sunday=0 numbering).
var DefaultWeekdays = []int{1, 3}
