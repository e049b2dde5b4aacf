package reports

import "github.com/shopspring/decimal"

// BuildCostReport prices the grouped rows. Per-call overrides beat the stored
// catalog cost; a group with neither stays unpriced (nil itemCost) and does
// not count toward the total. Money math runs on decimals.
func BuildCostReport(start, end string, rows []CostRow, overrides map[string]float64) CostReport {
	report := CostReport{Start: start, End: end, Items: make([]CostItem, 0, len(rows))}

	total := decimal.Zero
	priced := false
	for _, row := range rows {
		item := CostItem{CostRow: row}

		var unit *decimal.Decimal
		if override, ok := overrides[row.ItemID]; ok {
			d := decimal.NewFromFloat(override)
			unit = &d
		} else if row.Cost != nil {
			d := decimal.NewFromFloat(*row.Cost)
			unit = &d
		}

		if unit != nil {
			unitValue := unit.InexactFloat64()
			item.UnitCost = &unitValue

			cost := unit.Mul(decimal.NewFromInt(int64(row.Count)))
			costValue := cost.InexactFloat64()
			item.ItemCost = &costValue

			total = total.Add(cost)
			priced = true
		}

		report.Items = append(report.Items, item)
	}

	if priced {
		totalValue := total.InexactFloat64()
		report.TotalCost = &totalValue
	}
	return report
}
