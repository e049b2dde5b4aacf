package selections

import (
	"time"

	"pantry/internal/platform/apperr"
	"pantry/internal/platform/datekey"
)

// Write-rejection reasons, surfaced verbatim to clients.
const (
	ReasonWeekend        = "weekend is not selectable"
	ReasonPastDay        = "cannot modify selections for past days"
	ReasonNotCurrentWeek = "selections can only be made for the current week"
	ReasonWfhDay         = "work from home day"
	ReasonCutoffPassed   = "cutoff passed"
)

// WriteCheck carries everything the eligibility composition needs; the caller
// resolves the WFH flag and clock before asking.
type WriteCheck struct {
	Now     time.Time
	Day     time.Time
	IsWfh   bool
	Cutoffs Cutoffs
}

// CanWrite composes the write rules in precedence order: weekend, past day,
// current-week fence, WFH day, then the same-day cutoff for the session. The
// first failing rule names the rejection. Snack availability is deliberately
// not here — an unavailable snack normalizes to null instead of rejecting.
func CanWrite(chk WriteCheck, session Session) (bool, string) {
	if datekey.IsWeekend(chk.Day) {
		return false, ReasonWeekend
	}

	today := datekey.Today(chk.Now)
	if chk.Day.Before(today) {
		return false, ReasonPastDay
	}
	if !datekey.StartOfWeekMonday(chk.Day).Equal(datekey.StartOfWeekMonday(today)) {
		return false, ReasonNotCurrentWeek
	}
	if chk.IsWfh {
		return false, ReasonWfhDay
	}
	if !EditAllowed(session, chk.Now, chk.Day, chk.Cutoffs) {
		return false, ReasonCutoffPassed
	}
	return true, ""
}

// planDayWrite gates each field actually being written behind its session
// cutoff and normalizes the snack field for the date. Clearing a field (nil)
// is always allowed; cutoffs only restrict making a pick. A snack sent for a
// non-snack day is discarded before any catalog lookup, so it stores as null
// instead of rejecting the write.
func planDayWrite(input SelectionInput, now, day time.Time, cutoffs Cutoffs, snacksAvailable bool) (SelectionInput, error) {
	if input.MorningDrinkItemID != nil && !EditAllowed(SessionMorning, now, day, cutoffs) {
		return SelectionInput{}, apperr.Authorization("morning drink selections must be made before the cutoff time")
	}
	if (input.EveningDrinkItemID != nil || input.EveningSnackItemID != nil) && !EditAllowed(SessionEvening, now, day, cutoffs) {
		return SelectionInput{}, apperr.Authorization("evening selections must be made before the cutoff time")
	}
	if !snacksAvailable {
		input.EveningSnackItemID = nil
	}
	return input, nil
}

// weekTargets computes the dates a week-wide apply will write: weekdays of the
// week starting at monday that are on/after today, minus WFH days, minus today
// itself when a requested field's cutoff has already passed. Dropping today
// instead of failing keeps the rest of the week applying.
func weekTargets(monday, today time.Time, wantMorning, wantEvening, morningOpen, eveningOpen bool, isWfh func(key string) bool) []string {
	var keys []string
	for i := 0; i < 7; i++ {
		day := datekey.AddDays(monday, i)
		if datekey.IsWeekend(day) || day.Before(today) {
			continue
		}
		keys = append(keys, datekey.Format(day))
	}

	todayKey := datekey.Format(today)
	cutoffConflict := (wantMorning && !morningOpen) || (wantEvening && !eveningOpen)

	out := keys[:0]
	for _, key := range keys {
		if key == todayKey && cutoffConflict {
			continue
		}
		if isWfh(key) {
			continue
		}
		out = append(out, key)
	}
	return out
}
