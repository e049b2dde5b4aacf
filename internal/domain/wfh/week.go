package wfh

import (
	"time"

	"pantry/internal/platform/datekey"
)

// WeekSpan returns the Monday and Friday (inclusive) of the week containing
// day. Weeks start Monday; Saturday and Sunday belong to the preceding span.
func WeekSpan(day time.Time) (monday, friday time.Time) {
	monday = datekey.StartOfWeekMonday(day)
	return monday, datekey.AddDays(monday, 4)
}

// WeekSpanKeys is WeekSpan on date keys.
func WeekSpanKeys(key string) (start, end string, err error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return "", "", err
	}
	monday, friday := WeekSpan(day)
	return datekey.Format(monday), datekey.Format(friday), nil
}

// ResolveFreeDay is the two-tier free-day rule. An approved WFH date for the
// week, if any, replaces Friday entirely: that date is the free day and Friday
// reverts to a normal office day. With no approval, Friday is the default.
func ResolveFreeDay(approvedDateKey, key string, day time.Time) bool {
	if approvedDateKey != "" {
		return approvedDateKey == key
	}
	return datekey.IsFriday(day)
}
