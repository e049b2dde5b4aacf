package reports

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestBuildCostReportMixedPricing(t *testing.T) {
	rows := []CostRow{
		{ItemID: "a", Name: "Latte", Type: "drink", Session: SessionMorning, Cost: f64(20), Count: 3},
		{ItemID: "b", Name: "Green Tea", Type: "drink", Session: SessionEvening, Cost: nil, Count: 2},
	}

	report := BuildCostReport("2026-03-02", "2026-03-06", rows, nil)

	require.Len(t, report.Items, 2)

	require.NotNil(t, report.Items[0].UnitCost)
	require.Equal(t, 20.0, *report.Items[0].UnitCost)
	require.NotNil(t, report.Items[0].ItemCost)
	require.Equal(t, 60.0, *report.Items[0].ItemCost)

	require.Nil(t, report.Items[1].UnitCost)
	require.Nil(t, report.Items[1].ItemCost)

	require.NotNil(t, report.TotalCost)
	require.Equal(t, 60.0, *report.TotalCost)
}

func TestBuildCostReportNoCostDataAnywhere(t *testing.T) {
	rows := []CostRow{
		{ItemID: "a", Name: "Latte", Type: "drink", Session: SessionMorning, Count: 5},
	}

	report := BuildCostReport("2026-03-02", "2026-03-06", rows, nil)

	require.Nil(t, report.TotalCost, "no resolvable cost must report null, not zero")
	require.Len(t, report.Items, 1)
}

func TestBuildCostReportOverrideBeatsStoredCost(t *testing.T) {
	rows := []CostRow{
		{ItemID: "a", Name: "Latte", Type: "drink", Session: SessionMorning, Cost: f64(20), Count: 2},
		{ItemID: "b", Name: "Cookie", Type: "snack", Session: SessionEvening, Cost: nil, Count: 4},
	}
	overrides := map[string]float64{"a": 10, "b": 2.5}

	report := BuildCostReport("2026-03-02", "2026-03-06", rows, overrides)

	require.Equal(t, 10.0, *report.Items[0].UnitCost)
	require.Equal(t, 20.0, *report.Items[0].ItemCost)
	require.Equal(t, 2.5, *report.Items[1].UnitCost)
	require.Equal(t, 10.0, *report.Items[1].ItemCost)
	require.Equal(t, 30.0, *report.TotalCost)
}

func TestBuildCostReportDecimalAccumulation(t *testing.T) {
	rows := []CostRow{
		{ItemID: "a", Name: "Espresso", Type: "drink", Session: SessionMorning, Cost: f64(0.1), Count: 3},
	}

	report := BuildCostReport("2026-03-02", "2026-03-02", rows, nil)

	require.Equal(t, 0.3, *report.Items[0].ItemCost)
	require.Equal(t, 0.3, *report.TotalCost)
}

func TestSummarizeRosterOrdering(t *testing.T) {
	latte, tea, cookie := "Latte", "Tea", "Cookie"
	roster := []RosterRow{
		{UserName: "A", MorningDrink: &latte, EveningDrink: &tea, EveningSnack: &cookie},
		{UserName: "B", MorningDrink: &latte},
		{UserName: "C", MorningDrink: &tea},
	}

	morning, eveningDrinks, eveningSnacks := SummarizeRoster(roster)

	require.Equal(t, []NameCount{{"Latte", 2}, {"Tea", 1}}, morning)
	require.Equal(t, []NameCount{{"Tea", 1}}, eveningDrinks)
	require.Equal(t, []NameCount{{"Cookie", 1}}, eveningSnacks)
}
