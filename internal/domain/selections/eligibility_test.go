package selections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pantry/internal/platform/apperr"
)

// 2026-03-04 is a Wednesday.
func wednesdayWeek(t *testing.T) (now, monday time.Time) {
	t.Helper()
	return clock(t, "2026-03-04", 10, 0), clock(t, "2026-03-02", 0, 0)
}

func TestCanWritePrecedence(t *testing.T) {
	cutoffs := mustCutoffs(t)
	now, _ := wednesdayWeek(t)

	tests := []struct {
		name    string
		day     time.Time
		isWfh   bool
		session Session
		at      time.Time
		want    bool
		reason  string
	}{
		{"weekend rejected", clock(t, "2026-03-07", 0, 0), false, SessionMorning, now, false, ReasonWeekend},
		{"past day rejected", clock(t, "2026-03-03", 0, 0), false, SessionMorning, now, false, ReasonPastDay},
		{"next week rejected", clock(t, "2026-03-09", 0, 0), false, SessionMorning, now, false, ReasonNotCurrentWeek},
		{"wfh day rejected", clock(t, "2026-03-05", 0, 0), true, SessionMorning, now, false, ReasonWfhDay},
		{"today after morning cutoff", clock(t, "2026-03-04", 0, 0), false, SessionMorning, clock(t, "2026-03-04", 12, 0), false, ReasonCutoffPassed},
		{"today before cutoff allowed", clock(t, "2026-03-04", 0, 0), false, SessionMorning, now, true, ""},
		{"tomorrow allowed after cutoff", clock(t, "2026-03-05", 0, 0), false, SessionMorning, clock(t, "2026-03-04", 17, 0), true, ""},
		{"weekend beats past check", clock(t, "2026-02-28", 0, 0), false, SessionMorning, now, false, ReasonWeekend},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := CanWrite(WriteCheck{Now: tc.at, Day: tc.day, IsWfh: tc.isWfh, Cutoffs: cutoffs}, tc.session)
			require.Equal(t, tc.want, ok)
			require.Equal(t, tc.reason, reason)
		})
	}
}

func TestPlanDayWriteNormalizesSnackOnNonSnackDay(t *testing.T) {
	cutoffs := mustCutoffs(t)
	day := clock(t, "2026-03-04", 0, 0)
	now := clock(t, "2026-03-04", 9, 0)
	snackID := "5b4c1c9e-0000-0000-0000-000000000001"

	input := SelectionInput{EveningSnackItemID: &snackID}

	out, err := planDayWrite(input, now, day, cutoffs, false)
	require.NoError(t, err)
	require.Nil(t, out.EveningSnackItemID, "snack on a non-snack day must store null, not reject")

	out, err = planDayWrite(input, now, day, cutoffs, true)
	require.NoError(t, err)
	require.Equal(t, &snackID, out.EveningSnackItemID)
}

func TestPlanDayWriteCutoffGating(t *testing.T) {
	cutoffs := mustCutoffs(t)
	day := clock(t, "2026-03-04", 0, 0)
	id := "5b4c1c9e-0000-0000-0000-000000000002"

	tests := []struct {
		name    string
		input   SelectionInput
		now     time.Time
		wantErr bool
	}{
		{"morning pick before cutoff", SelectionInput{MorningDrinkItemID: &id}, clock(t, "2026-03-04", 11, 0), false},
		{"morning pick after cutoff", SelectionInput{MorningDrinkItemID: &id}, clock(t, "2026-03-04", 12, 0), true},
		{"morning clear after cutoff", SelectionInput{EveningDrinkItemID: &id}, clock(t, "2026-03-04", 12, 0), false},
		{"evening drink after evening cutoff", SelectionInput{EveningDrinkItemID: &id}, clock(t, "2026-03-04", 17, 0), true},
		{"snack after evening cutoff", SelectionInput{EveningSnackItemID: &id}, clock(t, "2026-03-04", 17, 0), true},
		{"clear everything after both cutoffs", SelectionInput{}, clock(t, "2026-03-04", 18, 0), false},
		{"tomorrow unaffected by cutoffs", SelectionInput{MorningDrinkItemID: &id, EveningDrinkItemID: &id}, clock(t, "2026-03-03", 18, 0), false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := planDayWrite(tc.input, tc.now, day, cutoffs, true)
			if tc.wantErr {
				require.Error(t, err)
				require.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWeekTargetsDropsTodayOnCutoffConflict(t *testing.T) {
	_, monday := wednesdayWeek(t)
	today := clock(t, "2026-03-04", 0, 0)

	noWfh := func(string) bool { return false }

	// Morning cutoff already passed: today drops, the rest of the week stays.
	got := weekTargets(monday, today, true, false, false, true, noWfh)
	require.Equal(t, []string{"2026-03-05", "2026-03-06"}, got)

	// All requested cutoffs still open: today is included.
	got = weekTargets(monday, today, true, true, true, true, noWfh)
	require.Equal(t, []string{"2026-03-04", "2026-03-05", "2026-03-06"}, got)

	// An evening-only apply does not care about the morning cutoff.
	got = weekTargets(monday, today, false, true, false, true, noWfh)
	require.Equal(t, []string{"2026-03-04", "2026-03-05", "2026-03-06"}, got)
}

func TestWeekTargetsSkipsWfhAndPastDays(t *testing.T) {
	_, monday := wednesdayWeek(t)
	today := clock(t, "2026-03-04", 0, 0)

	wfhThursday := func(key string) bool { return key == "2026-03-05" }

	got := weekTargets(monday, today, true, true, true, true, wfhThursday)
	require.Equal(t, []string{"2026-03-04", "2026-03-06"}, got)
}

func TestWeekTargetsFromMondayCoversWholeWeek(t *testing.T) {
	_, monday := wednesdayWeek(t)

	got := weekTargets(monday, monday, true, true, true, true, func(string) bool { return false })
	require.Equal(t, []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"}, got)
}
