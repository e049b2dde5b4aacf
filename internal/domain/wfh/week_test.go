package wfh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pantry/internal/platform/datekey"
)

func TestWeekSpanKeys(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantStart string
		wantEnd   string
	}{
		{name: "monday", key: "2026-01-26", wantStart: "2026-01-26", wantEnd: "2026-01-30"},
		{name: "midweek", key: "2026-01-28", wantStart: "2026-01-26", wantEnd: "2026-01-30"},
		{name: "friday", key: "2026-01-30", wantStart: "2026-01-26", wantEnd: "2026-01-30"},
		{name: "sunday belongs to preceding week", key: "2026-02-01", wantStart: "2026-01-26", wantEnd: "2026-01-30"},
		{name: "year boundary", key: "2026-01-01", wantStart: "2025-12-29", wantEnd: "2026-01-02"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := WeekSpanKeys(tc.key)
			require.NoError(t, err)
			require.Equal(t, tc.wantStart, start)
			require.Equal(t, tc.wantEnd, end)
		})
	}

	_, _, err := WeekSpanKeys("not-a-date")
	require.Error(t, err)
}

func TestResolveFreeDay(t *testing.T) {
	tests := []struct {
		name     string
		approved string
		key      string
		want     bool
	}{
		{name: "no approval, friday is free", approved: "", key: "2026-01-30", want: true},
		{name: "no approval, tuesday is office", approved: "", key: "2026-01-27", want: false},
		{name: "approved tuesday is free", approved: "2026-01-27", key: "2026-01-27", want: true},
		{name: "approved tuesday makes friday an office day", approved: "2026-01-27", key: "2026-01-30", want: false},
		{name: "approved day elsewhere leaves monday alone", approved: "2026-01-27", key: "2026-01-26", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := datekey.Parse(tc.key)
			require.NoError(t, err)
			require.Equal(t, tc.want, ResolveFreeDay(tc.approved, tc.key, parsed))
		})
	}
}

func TestCanTransitionTerminalStatuses(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    bool
	}{
		{"approve pending", StatusPending, StatusApproved, true},
		{"reject pending", StatusPending, StatusRejected, true},
		{"revoke pending", StatusPending, StatusRevoked, true},
		{"replace pending", StatusPending, StatusReplaced, true},
		{"revoke approved", StatusApproved, StatusRevoked, true},
		{"replace approved", StatusApproved, StatusReplaced, true},
		{"re-approve approved", StatusApproved, StatusApproved, false},
		{"reject approved", StatusApproved, StatusRejected, false},
		{"approve replaced", StatusReplaced, StatusApproved, false},
		{"approve rejected", StatusRejected, StatusApproved, false},
		{"revoke revoked", StatusRevoked, StatusRevoked, false},
		{"unknown target", StatusPending, "escalated", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanTransition(tc.current, tc.next))
		})
	}
}
