package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"pantry/internal/platform/datekey"
)

// WriteDayCSV renders the printable day sheet: a header block, the per-person
// roster, then per-session summary sections. The layout matches what the
// pantry staff pin up, not a strict rectangular table.
func WriteDayCSV(w io.Writer, key, session string, roster []RosterRow) error {
	day, err := datekey.Parse(key)
	if err != nil {
		return err
	}
	if session == "" {
		session = SessionAll
	}

	cw := csv.NewWriter(w)

	records := [][]string{
		{"Report Date: " + day.Format("January 2, 2006")},
		{"Day: " + day.Weekday().String()},
		{"Session: " + session},
		{""},
		{"Name", "Email", "Morning Drink", "Evening Drink", "Evening Snack"},
	}
	for _, row := range roster {
		records = append(records, []string{
			row.UserName,
			row.UserEmail,
			nameOrEmpty(row.MorningDrink),
			nameOrEmpty(row.EveningDrink),
			nameOrEmpty(row.EveningSnack),
		})
	}

	morning, eveningDrinks, eveningSnacks := SummarizeRoster(roster)
	records = append(records, summarySection("SUMMARY - MORNING DRINKS", morning)...)
	records = append(records, summarySection("SUMMARY - EVENING DRINKS", eveningDrinks)...)
	records = append(records, summarySection("SUMMARY - EVENING SNACKS", eveningSnacks)...)

	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func summarySection(title string, counts []NameCount) [][]string {
	records := [][]string{{""}, {title}, {"Item", "Count"}}
	if len(counts) == 0 {
		return append(records, []string{"No selections", "0"})
	}
	for _, nc := range counts {
		records = append(records, []string{nc.Name, strconv.Itoa(nc.Count)})
	}
	return records
}

func nameOrEmpty(name *string) string {
	if name == nil {
		return ""
	}
	return *name
}
