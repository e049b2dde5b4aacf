package selections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustCutoffs(t *testing.T) Cutoffs {
	t.Helper()
	c, err := NewCutoffs("11:20", "16:15")
	require.NoError(t, err)
	return c
}

func clock(t *testing.T, day string, hour, minute int) time.Time {
	t.Helper()
	base, err := time.ParseInLocation("2006-01-02", day, time.Local)
	require.NoError(t, err)
	return base.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestNewCutoffsRejectsBadClock(t *testing.T) {
	_, err := NewCutoffs("25:00", "16:15")
	require.Error(t, err)
	_, err = NewCutoffs("11:20", "nope")
	require.Error(t, err)
}

func TestSameDayAllowedStrictlyBeforeCutoff(t *testing.T) {
	cutoffs := mustCutoffs(t)

	tests := []struct {
		name    string
		session Session
		hour    int
		minute  int
		want    bool
	}{
		{"morning well before", SessionMorning, 9, 0, true},
		{"morning one minute before", SessionMorning, 11, 19, true},
		{"morning at cutoff", SessionMorning, 11, 20, false},
		{"morning after cutoff", SessionMorning, 14, 0, false},
		{"evening before", SessionEvening, 16, 14, true},
		{"evening at cutoff", SessionEvening, 16, 15, false},
		{"evening after", SessionEvening, 18, 0, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			now := clock(t, "2026-03-04", tc.hour, tc.minute)
			require.Equal(t, tc.want, cutoffs.SameDayAllowed(tc.session, now))
		})
	}
}

func TestEditAllowedOnlyRestrictsToday(t *testing.T) {
	cutoffs := mustCutoffs(t)
	now := clock(t, "2026-03-04", 15, 0) // morning cutoff passed, evening still open

	today := clock(t, "2026-03-04", 0, 0)
	require.False(t, EditAllowed(SessionMorning, now, today, cutoffs))
	require.True(t, EditAllowed(SessionEvening, now, today, cutoffs))

	// Tomorrow is unrestricted regardless of the clock.
	tomorrow := clock(t, "2026-03-05", 0, 0)
	require.True(t, EditAllowed(SessionMorning, now, tomorrow, cutoffs))
	require.True(t, EditAllowed(SessionEvening, now, tomorrow, cutoffs))
}
