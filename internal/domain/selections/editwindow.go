package selections

import (
	"time"

	"pantry/internal/platform/config"
	"pantry/internal/platform/datekey"
)

// Cutoffs are the same-day edit deadlines. They exist because the pantry needs
// lead time to prepare the round; they never restrict future-dated planning.
type Cutoffs struct {
	MorningMinutes int
	EveningMinutes int
	MorningLabel   string
	EveningLabel   string
}

func NewCutoffs(morning, evening string) (Cutoffs, error) {
	morningMin, err := config.ParseClock(morning)
	if err != nil {
		return Cutoffs{}, err
	}
	eveningMin, err := config.ParseClock(evening)
	if err != nil {
		return Cutoffs{}, err
	}
	return Cutoffs{
		MorningMinutes: morningMin,
		EveningMinutes: eveningMin,
		MorningLabel:   morning,
		EveningLabel:   evening,
	}, nil
}

// SameDayAllowed reports whether a same-day edit for the session is still
// open: strictly before the cutoff, on minutes of the local clock.
func (c Cutoffs) SameDayAllowed(session Session, now time.Time) bool {
	minuteOfDay := now.Hour()*60 + now.Minute()
	switch session {
	case SessionMorning:
		return minuteOfDay < c.MorningMinutes
	case SessionEvening:
		return minuteOfDay < c.EveningMinutes
	}
	return false
}

// EditAllowed is the full edit-window rule: cutoffs only restrict edits whose
// target date is today.
func EditAllowed(session Session, now, day time.Time, cutoffs Cutoffs) bool {
	if !datekey.Today(now).Equal(datekey.Today(day)) {
		return true
	}
	return cutoffs.SameDayAllowed(session, now)
}
