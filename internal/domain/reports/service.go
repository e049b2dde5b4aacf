package reports

import (
	"context"

	"pantry/internal/domain/calendar"
	"pantry/internal/platform/apperr"
	"pantry/internal/platform/datekey"
	"pantry/internal/platform/querier"
)

// Session and include filters for the day report.
const (
	SessionMorning = "morning"
	SessionEvening = "evening"
	SessionAll     = "all"

	IncludeDrinks = "drinks"
	IncludeSnacks = "snacks"
	IncludeAll    = "all"
)

type Service struct {
	DB       querier.Querier
	Calendar *calendar.Service
}

func NewService(db querier.Querier, cal *calendar.Service) *Service {
	return &Service{DB: db, Calendar: cal}
}

// CountsForDay groups the stored selections of one date by item, per session.
// The snack group is omitted entirely, not zeroed, on non-snack days.
func (s *Service) CountsForDay(ctx context.Context, key, session, include string) (DayCounts, error) {
	if _, err := datekey.Parse(key); err != nil {
		return DayCounts{}, apperr.Validation("invalid date key %q", key)
	}
	if session != SessionMorning && session != SessionEvening && session != SessionAll {
		return DayCounts{}, apperr.Validation("session must be morning, evening or all")
	}
	if include != IncludeDrinks && include != IncludeSnacks && include != IncludeAll {
		return DayCounts{}, apperr.Validation("include must be drinks, snacks or all")
	}

	snacks, err := s.Calendar.SnacksAvailableOn(ctx, key)
	if err != nil {
		return DayCounts{}, err
	}

	out := DayCounts{DateKey: key, Session: session, SnacksAvailable: snacks, Counts: map[string][]CountRow{}, Selections: []RosterRow{}}

	groups := dayCountGroups(session, include, snacks)
	for _, g := range groups {
		rows, err := s.countGroup(ctx, g.column, "s.date_key = $1", key)
		if err != nil {
			return DayCounts{}, err
		}
		out.Counts[g.label] = rows
	}

	// Mutually exclusive filters (e.g. morning snacks) yield an empty report,
	// roster included.
	if len(groups) == 0 {
		return out, nil
	}

	roster, err := s.DayRoster(ctx, key)
	if err != nil {
		return DayCounts{}, err
	}
	if roster != nil {
		out.Selections = roster
	}
	return out, nil
}

type countGroupSpec struct {
	label  string
	column string
}

// dayCountGroups resolves the session/include filter matrix into the selection
// columns the day report aggregates. The snack column only appears when snacks
// are available on the date.
func dayCountGroups(session, include string, snacksAvailable bool) []countGroupSpec {
	var groups []countGroupSpec
	switch session {
	case SessionMorning:
		if include != IncludeSnacks {
			groups = append(groups, countGroupSpec{"drinks", "morning_drink_item_id"})
		}
	case SessionEvening:
		if include != IncludeSnacks {
			groups = append(groups, countGroupSpec{"drinks", "evening_drink_item_id"})
		}
		if include != IncludeDrinks && snacksAvailable {
			groups = append(groups, countGroupSpec{"snacks", "evening_snack_item_id"})
		}
	case SessionAll:
		if include != IncludeSnacks {
			groups = append(groups, countGroupSpec{"drinksMorning", "morning_drink_item_id"})
			groups = append(groups, countGroupSpec{"drinksEvening", "evening_drink_item_id"})
		}
		if include != IncludeDrinks && snacksAvailable {
			groups = append(groups, countGroupSpec{"snacksEvening", "evening_snack_item_id"})
		}
	}
	return groups
}

// CountsForRange groups all three fields over [start, end]. History is shown
// as stored: snack counts are never suppressed here.
func (s *Service) CountsForRange(ctx context.Context, start, end string) (RangeCounts, error) {
	if _, err := datekey.Parse(start); err != nil {
		return RangeCounts{}, apperr.Validation("invalid date key %q", start)
	}
	if _, err := datekey.Parse(end); err != nil {
		return RangeCounts{}, apperr.Validation("invalid date key %q", end)
	}

	out := RangeCounts{Start: start, End: end}
	var err error
	if out.DrinksMorning, err = s.countGroup(ctx, "morning_drink_item_id", "s.date_key >= $1 AND s.date_key <= $2", start, end); err != nil {
		return RangeCounts{}, err
	}
	if out.DrinksEvening, err = s.countGroup(ctx, "evening_drink_item_id", "s.date_key >= $1 AND s.date_key <= $2", start, end); err != nil {
		return RangeCounts{}, err
	}
	if out.SnacksEvening, err = s.countGroup(ctx, "evening_snack_item_id", "s.date_key >= $1 AND s.date_key <= $2", start, end); err != nil {
		return RangeCounts{}, err
	}
	return out, nil
}

// CostForRange runs the grouped queries and prices them via BuildCostReport.
func (s *Service) CostForRange(ctx context.Context, start, end string, overrides map[string]float64) (CostReport, error) {
	if _, err := datekey.Parse(start); err != nil {
		return CostReport{}, apperr.Validation("invalid date key %q", start)
	}
	if _, err := datekey.Parse(end); err != nil {
		return CostReport{}, apperr.Validation("invalid date key %q", end)
	}
	for _, cost := range overrides {
		if cost < 0 {
			return CostReport{}, apperr.Validation("cost overrides must be non-negative")
		}
	}

	var rows []CostRow
	for _, g := range []struct {
		column  string
		session string
	}{
		{"morning_drink_item_id", SessionMorning},
		{"evening_drink_item_id", SessionEvening},
		{"evening_snack_item_id", SessionEvening},
	} {
		batch, err := s.costGroup(ctx, g.column, g.session, start, end)
		if err != nil {
			return CostReport{}, err
		}
		rows = append(rows, batch...)
	}

	return BuildCostReport(start, end, rows, overrides), nil
}

// DayRoster lists who picked what on a date, with item names resolved.
func (s *Service) DayRoster(ctx context.Context, key string) ([]RosterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(u.name, ''), u.email, md.name, ed.name, es.name
    FROM selections s
    JOIN users u ON u.id = s.user_id
    LEFT JOIN catalog_items md ON md.id = s.morning_drink_item_id
    LEFT JOIN catalog_items ed ON ed.id = s.evening_drink_item_id
    LEFT JOIN catalog_items es ON es.id = s.evening_snack_item_id
    WHERE s.date_key = $1
    ORDER BY u.name, u.email
    LIMIT 2000
  `, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []RosterRow
	for rows.Next() {
		var row RosterRow
		if err := rows.Scan(&row.UserName, &row.UserEmail, &row.MorningDrink, &row.EveningDrink, &row.EveningSnack); err != nil {
			return nil, err
		}
		roster = append(roster, row)
	}
	return roster, rows.Err()
}

func (s *Service) countGroup(ctx context.Context, column, where string, args ...any) ([]CountRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.id, c.name, c.type, COUNT(*)
    FROM selections s
    JOIN catalog_items c ON c.id = s.`+column+`
    WHERE `+where+`
    GROUP BY c.id, c.name, c.type
    ORDER BY COUNT(*) DESC, c.name ASC
  `, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountRow
	for rows.Next() {
		var row CountRow
		if err := rows.Scan(&row.ItemID, &row.Name, &row.Type, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Service) costGroup(ctx context.Context, column, session, start, end string) ([]CostRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.id, c.name, c.type, c.cost, COUNT(*)
    FROM selections s
    JOIN catalog_items c ON c.id = s.`+column+`
    WHERE s.date_key >= $1 AND s.date_key <= $2
    GROUP BY c.id, c.name, c.type, c.cost
    ORDER BY COUNT(*) DESC, c.name ASC
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CostRow
	for rows.Next() {
		row := CostRow{Session: session}
		if err := rows.Scan(&row.ItemID, &row.Name, &row.Type, &row.Cost, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
