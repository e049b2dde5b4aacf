package reports

type CountRow struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Count  int    `json:"count"`
}

// RosterRow is one user's picks for a date with names resolved; nil means no
// pick, or an item that has since been deleted.
type RosterRow struct {
	UserName     string  `json:"userName"`
	UserEmail    string  `json:"userEmail"`
	MorningDrink *string `json:"morningDrink"`
	EveningDrink *string `json:"eveningDrink"`
	EveningSnack *string `json:"eveningSnack"`
}

type DayCounts struct {
	DateKey         string                `json:"dateKey"`
	Session         string                `json:"session"`
	SnacksAvailable bool                  `json:"snacksAvailable"`
	Counts          map[string][]CountRow `json:"counts"`
	Selections      []RosterRow           `json:"selections"`
}

type RangeCounts struct {
	Start         string     `json:"start"`
	End           string     `json:"end"`
	DrinksMorning []CountRow `json:"drinksMorning"`
	DrinksEvening []CountRow `json:"drinksEvening"`
	SnacksEvening []CountRow `json:"snacksEvening"`
}

// CostRow is a (item, session) group with the item's stored unit cost.
type CostRow struct {
	ItemID  string   `json:"itemId"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Session string   `json:"session"`
	Cost    *float64 `json:"-"`
	Count   int      `json:"count"`
}

type CostItem struct {
	CostRow
	UnitCost *float64 `json:"unitCost"`
	ItemCost *float64 `json:"itemCost"`
}

// CostReport totals every priced group in range. TotalCost is null, not zero,
// when no item resolves a cost — "no cost data" and "free" are different.
type CostReport struct {
	Start     string     `json:"start"`
	End       string     `json:"end"`
	TotalCost *float64   `json:"totalCost"`
	Items     []CostItem `json:"items"`
}
