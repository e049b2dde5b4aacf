package selections

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"pantry/internal/domain/calendar"
	"pantry/internal/domain/catalog"
	"pantry/internal/domain/wfh"
	"pantry/internal/platform/apperr"
	"pantry/internal/platform/datekey"
	"pantry/internal/platform/querier"
)

const selectionColumns = "id, user_id, date_key, morning_drink_item_id, evening_drink_item_id, evening_snack_item_id, created_at, updated_at"

type Service struct {
	DB       querier.TxQuerier
	Calendar *calendar.Service
	Wfh      *wfh.Service
	Catalog  *catalog.Service
	Cutoffs  Cutoffs
	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(db querier.TxQuerier, cal *calendar.Service, wfhSvc *wfh.Service, cat *catalog.Service, cutoffs Cutoffs) *Service {
	return &Service{DB: db, Calendar: cal, Wfh: wfhSvc, Catalog: cat, Cutoffs: cutoffs, Now: time.Now}
}

// EditRestrictions is the client-facing cutoff snapshot for "now".
func (s *Service) EditRestrictions() Restrictions {
	now := s.Now()
	return Restrictions{
		MorningAllowed: s.Cutoffs.SameDayAllowed(SessionMorning, now),
		EveningAllowed: s.Cutoffs.SameDayAllowed(SessionEvening, now),
		MorningCutoff:  s.Cutoffs.MorningLabel,
		EveningCutoff:  s.Cutoffs.EveningLabel,
	}
}

// Day returns availability, the WFH flag, the edit window and the stored
// selection for one date.
func (s *Service) Day(ctx context.Context, userID, key string) (DayView, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return DayView{}, apperr.Validation("invalid date key %q", key)
	}

	snacks, err := s.Calendar.SnacksAvailableOn(ctx, key)
	if err != nil {
		return DayView{}, err
	}
	isWfh, err := s.Wfh.IsWfhDay(ctx, userID, key)
	if err != nil {
		return DayView{}, err
	}

	now := s.Now()
	view := DayView{
		DateKey:         key,
		SnacksAvailable: snacks,
		IsWfh:           isWfh,
		MorningAllowed:  EditAllowed(SessionMorning, now, day, s.Cutoffs),
		EveningAllowed:  EditAllowed(SessionEvening, now, day, s.Cutoffs),
	}

	sel, err := s.findOne(ctx, userID, key)
	if err != nil {
		return DayView{}, err
	}
	view.Selection = sel
	return view, nil
}

// Week returns the Mon-Fri overview for the week containing key.
func (s *Service) Week(ctx context.Context, userID, key string) (WeekView, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return WeekView{}, apperr.Validation("invalid date key %q", key)
	}

	monday, _ := wfh.WeekSpan(day)
	approved, err := s.Wfh.ApprovedDateForWeek(ctx, userID, key)
	if err != nil {
		return WeekView{}, err
	}
	cfg, err := s.Calendar.GetConfig(ctx)
	if err != nil {
		return WeekView{}, err
	}

	keys := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		keys = append(keys, datekey.Format(datekey.AddDays(monday, i)))
	}

	rows, err := s.DB.Query(ctx, `
    SELECT date_key,
           morning_drink_item_id IS NOT NULL OR evening_drink_item_id IS NOT NULL OR evening_snack_item_id IS NOT NULL
    FROM selections
    WHERE user_id = $1 AND date_key = ANY($2)
  `, userID, keys)
	if err != nil {
		return WeekView{}, err
	}
	defer rows.Close()

	hasSelection := make(map[string]bool, 5)
	for rows.Next() {
		var k string
		var has bool
		if err := rows.Scan(&k, &has); err != nil {
			return WeekView{}, err
		}
		hasSelection[k] = has
	}
	if err := rows.Err(); err != nil {
		return WeekView{}, err
	}

	view := WeekView{WeekOf: datekey.Format(monday)}
	for i, k := range keys {
		d := datekey.AddDays(monday, i)
		view.Days = append(view.Days, WeekDay{
			DateKey:         k,
			SnacksAvailable: calendar.SnacksAvailable(cfg, d),
			IsWfh:           wfh.ResolveFreeDay(approved, k, d),
			HasSelection:    hasSelection[k],
		})
	}
	return view, nil
}

// UpsertDay writes one user's picks for one date, enforcing the eligibility
// composition per field session. Repeated identical writes land on the same
// row. A snack on a non-snack day is normalized to null, not rejected.
func (s *Service) UpsertDay(ctx context.Context, userID, key string, input SelectionInput) (*Selection, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return nil, apperr.Validation("invalid date key %q", key)
	}

	isWfh, err := s.Wfh.IsWfhDay(ctx, userID, key)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	chk := WriteCheck{Now: now, Day: day, IsWfh: isWfh, Cutoffs: s.Cutoffs}

	// The non-session rules reject regardless of which fields are set.
	if ok, reason := CanWrite(chk, SessionMorning); !ok && reason != ReasonCutoffPassed {
		return nil, apperr.Validation("%s", reason)
	}

	snacks, err := s.Calendar.SnacksAvailableOn(ctx, key)
	if err != nil {
		return nil, err
	}

	input, err = planDayWrite(input, now, day, s.Cutoffs, snacks)
	if err != nil {
		return nil, err
	}

	morning, err := s.resolve(ctx, input.MorningDrinkItemID, catalog.TypeDrink)
	if err != nil {
		return nil, err
	}
	eveningDrink, err := s.resolve(ctx, input.EveningDrinkItemID, catalog.TypeDrink)
	if err != nil {
		return nil, err
	}
	eveningSnack, err := s.resolve(ctx, input.EveningSnackItemID, catalog.TypeSnack)
	if err != nil {
		return nil, err
	}

	var sel Selection
	err = s.DB.QueryRow(ctx, `
    INSERT INTO selections (user_id, date_key, morning_drink_item_id, evening_drink_item_id, evening_snack_item_id)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (user_id, date_key) DO UPDATE
    SET morning_drink_item_id = EXCLUDED.morning_drink_item_id,
        evening_drink_item_id = EXCLUDED.evening_drink_item_id,
        evening_snack_item_id = EXCLUDED.evening_snack_item_id,
        updated_at = now()
    RETURNING `+selectionColumns+`
  `, userID, key, morning, eveningDrink, eveningSnack).Scan(
		&sel.ID, &sel.UserID, &sel.DateKey, &sel.MorningDrinkItemID, &sel.EveningDrinkItemID, &sel.EveningSnackItemID,
		&sel.CreatedAt, &sel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

// ApplyWeek writes the same picks to every remaining eligible weekday of the
// current week. Today is dropped, not failed, when its cutoff has passed for a
// requested field; the snack field is nulled per date where snacks are off.
func (s *Service) ApplyWeek(ctx context.Context, userID, weekOf string, input SelectionInput) (WeekApplyResult, error) {
	day, err := datekey.Parse(weekOf)
	if err != nil {
		return WeekApplyResult{}, apperr.Validation("invalid date key %q", weekOf)
	}

	now := s.Now()
	today := datekey.Today(now)
	monday, _ := wfh.WeekSpan(day)
	if !monday.Equal(datekey.StartOfWeekMonday(today)) {
		return WeekApplyResult{}, apperr.Validation("week preference can only be set for the current week")
	}

	approved, err := s.Wfh.ApprovedDateForWeek(ctx, userID, weekOf)
	if err != nil {
		return WeekApplyResult{}, err
	}

	targets := weekTargets(
		monday, today,
		input.MorningDrinkItemID != nil,
		input.EveningDrinkItemID != nil || input.EveningSnackItemID != nil,
		s.Cutoffs.SameDayAllowed(SessionMorning, now),
		s.Cutoffs.SameDayAllowed(SessionEvening, now),
		func(key string) bool {
			d, _ := datekey.Parse(key)
			return wfh.ResolveFreeDay(approved, key, d)
		},
	)

	morning, err := s.resolve(ctx, input.MorningDrinkItemID, catalog.TypeDrink)
	if err != nil {
		return WeekApplyResult{}, err
	}
	eveningDrink, err := s.resolve(ctx, input.EveningDrinkItemID, catalog.TypeDrink)
	if err != nil {
		return WeekApplyResult{}, err
	}
	snackCandidate, err := s.resolve(ctx, input.EveningSnackItemID, catalog.TypeSnack)
	if err != nil {
		return WeekApplyResult{}, err
	}

	cfg, err := s.Calendar.GetConfig(ctx)
	if err != nil {
		return WeekApplyResult{}, err
	}

	batch := &pgx.Batch{}
	for _, key := range targets {
		d, _ := datekey.Parse(key)
		var snack *string
		if calendar.SnacksAvailable(cfg, d) {
			snack = snackCandidate
		}
		batch.Queue(`
      INSERT INTO selections (user_id, date_key, morning_drink_item_id, evening_drink_item_id, evening_snack_item_id)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT (user_id, date_key) DO UPDATE
      SET morning_drink_item_id = EXCLUDED.morning_drink_item_id,
          evening_drink_item_id = EXCLUDED.evening_drink_item_id,
          evening_snack_item_id = EXCLUDED.evening_snack_item_id,
          updated_at = now()
    `, userID, key, morning, eveningDrink, snack)
	}

	if batch.Len() > 0 {
		tx, err := s.DB.Begin(ctx)
		if err != nil {
			return WeekApplyResult{}, err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return WeekApplyResult{}, err
		}
		if err := tx.Commit(ctx); err != nil {
			return WeekApplyResult{}, err
		}
	}

	if targets == nil {
		targets = []string{}
	}
	return WeekApplyResult{AppliedDates: targets}, nil
}

// History page sizing, shared with the transport layer.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

func normalizeHistoryLimit(limit int) int {
	if limit <= 0 || limit > MaxHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}

// History lists the user's latest selections, newest date first, with catalog
// names resolved where the items still exist.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	limit = normalizeHistoryLimit(limit)

	rows, err := s.DB.Query(ctx, `
    SELECT s.id, s.date_key, s.updated_at,
           md.id, md.name, md.type,
           ed.id, ed.name, ed.type,
           es.id, es.name, es.type
    FROM selections s
    LEFT JOIN catalog_items md ON md.id = s.morning_drink_item_id
    LEFT JOIN catalog_items ed ON ed.id = s.evening_drink_item_id
    LEFT JOIN catalog_items es ON es.id = s.evening_snack_item_id
    WHERE s.user_id = $1
    ORDER BY s.date_key DESC
    LIMIT $2
  `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var m, d, sn [3]*string
		if err := rows.Scan(
			&e.ID, &e.DateKey, &e.UpdatedAt,
			&m[0], &m[1], &m[2],
			&d[0], &d[1], &d[2],
			&sn[0], &sn[1], &sn[2],
		); err != nil {
			return nil, err
		}
		e.MorningDrink = itemRef(m)
		e.EveningDrink = itemRef(d)
		e.EveningSnack = itemRef(sn)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func itemRef(cols [3]*string) *ItemRef {
	if cols[0] == nil {
		return nil
	}
	ref := ItemRef{ID: *cols[0]}
	if cols[1] != nil {
		ref.Name = *cols[1]
	}
	if cols[2] != nil {
		ref.Type = *cols[2]
	}
	return &ref
}

func (s *Service) resolve(ctx context.Context, id *string, expectedType string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	item, err := s.Catalog.ResolveActiveTyped(ctx, *id, expectedType)
	if err != nil {
		return nil, err
	}
	return &item.ID, nil
}

func (s *Service) findOne(ctx context.Context, userID, key string) (*Selection, error) {
	var sel Selection
	err := s.DB.QueryRow(ctx, `
    SELECT `+selectionColumns+` FROM selections WHERE user_id = $1 AND date_key = $2
  `, userID, key).Scan(
		&sel.ID, &sel.UserID, &sel.DateKey, &sel.MorningDrinkItemID, &sel.EveningDrinkItemID, &sel.EveningSnackItemID,
		&sel.CreatedAt, &sel.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sel, nil
}
