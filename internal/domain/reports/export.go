package reports

import "sort"

type NameCount struct {
	Name  string
	Count int
}

// SummarizeRoster tallies item names per session from the roster rows, sorted
// by descending count then ascending name, for the export summary sections.
func SummarizeRoster(roster []RosterRow) (morning, eveningDrinks, eveningSnacks []NameCount) {
	tally := func(pick func(RosterRow) *string) []NameCount {
		counts := map[string]int{}
		for _, row := range roster {
			if name := pick(row); name != nil && *name != "" {
				counts[*name]++
			}
		}
		out := make([]NameCount, 0, len(counts))
		for name, count := range counts {
			out = append(out, NameCount{Name: name, Count: count})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Name < out[j].Name
		})
		return out
	}

	morning = tally(func(r RosterRow) *string { return r.MorningDrink })
	eveningDrinks = tally(func(r RosterRow) *string { return r.EveningDrink })
	eveningSnacks = tally(func(r RosterRow) *string { return r.EveningSnack })
	return morning, eveningDrinks, eveningSnacks
}
