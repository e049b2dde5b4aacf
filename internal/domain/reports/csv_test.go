package reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDayCSV(t *testing.T) {
	latte := "Latte"
	roster := []RosterRow{
		{UserName: "Alice", UserEmail: "alice@example.com", MorningDrink: &latte},
	}

	var sb strings.Builder
	require.NoError(t, WriteDayCSV(&sb, "2026-03-04", "all", roster))

	out := sb.String()
	require.Contains(t, out, "Report Date: March 4, 2026")
	require.Contains(t, out, "Day: Wednesday")
	require.Contains(t, out, "Session: all")
	require.Contains(t, out, "Alice,alice@example.com,Latte,,")
	require.Contains(t, out, "SUMMARY - MORNING DRINKS")
	require.Contains(t, out, "Latte,1")
	require.Contains(t, out, "SUMMARY - EVENING SNACKS")
	require.Contains(t, out, "No selections,0")
}

func TestWriteDayCSVRejectsBadDate(t *testing.T) {
	var sb strings.Builder
	require.Error(t, WriteDayCSV(&sb, "not-a-date", "all", nil))
}
