package calendar

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pantry/internal/platform/apperr"
	"pantry/internal/platform/datekey"
	"pantry/internal/platform/querier"
)

type Service struct {
	DB querier.TxQuerier
}

func NewService(db querier.TxQuerier) *Service {
	return &Service{DB: db}
}

// GetConfig fetches the singleton config, creating it with the defaults the
// first time anyone asks.
func (s *Service) GetConfig(ctx context.Context) (Config, error) {
	cfg, found, err := s.fetchConfig(ctx)
	if err != nil {
		return Config{}, err
	}
	if found {
		return cfg, nil
	}

	if _, err := s.DB.Exec(ctx, `
    INSERT INTO calendar_config (default_snack_weekdays) VALUES ($1)
    ON CONFLICT DO NOTHING
  `, DefaultWeekdays); err != nil {
		return Config{}, err
	}

	cfg, _, err = s.fetchConfig(ctx)
	return cfg, err
}

// ReplaceConfig swaps the weekday defaults and the whole override list, the
// way the admin calendar page submits them.
func (s *Service) ReplaceConfig(ctx context.Context, weekdays []int, overrides []Override) (Config, error) {
	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return Config{}, apperr.Validation("weekdays must be integers 0..6")
		}
	}
	for _, ov := range overrides {
		if _, err := datekey.Parse(ov.DateKey); err != nil {
			return Config{}, apperr.Validation("invalid override date key %q", ov.DateKey)
		}
	}

	if _, err := s.GetConfig(ctx); err != nil {
		return Config{}, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "UPDATE calendar_config SET default_snack_weekdays = $1, updated_at = now()", weekdays); err != nil {
		return Config{}, err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM calendar_overrides"); err != nil {
		return Config{}, err
	}
	for _, ov := range overrides {
		if _, err := tx.Exec(ctx, `
      INSERT INTO calendar_overrides (date_key, snacks_available) VALUES ($1, $2)
      ON CONFLICT (date_key) DO UPDATE SET snacks_available = EXCLUDED.snacks_available
    `, ov.DateKey, ov.SnacksAvailable); err != nil {
			return Config{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Config{}, err
	}

	cfg, _, err := s.fetchConfig(ctx)
	return cfg, err
}

// SnacksAvailableOn resolves the rule for one date key.
func (s *Service) SnacksAvailableOn(ctx context.Context, key string) (bool, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return false, apperr.Validation("invalid date key %q", key)
	}
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return false, err
	}
	return SnacksAvailable(cfg, day), nil
}

func (s *Service) fetchConfig(ctx context.Context) (Config, bool, error) {
	var cfg Config
	var weekdays []int32
	err := s.DB.QueryRow(ctx, `
    SELECT id, default_snack_weekdays, updated_at
    FROM calendar_config
    LIMIT 1
  `).Scan(&cfg.ID, &weekdays, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Config{}, false, nil
		}
		return Config{}, false, err
	}

	cfg.DefaultSnackWeekdays = make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		cfg.DefaultSnackWeekdays = append(cfg.DefaultSnackWeekdays, int(wd))
	}

	rows, err := s.DB.Query(ctx, "SELECT date_key, snacks_available FROM calendar_overrides ORDER BY date_key")
	if err != nil {
		return Config{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var ov Override
		if err := rows.Scan(&ov.DateKey, &ov.SnacksAvailable); err != nil {
			return Config{}, false, err
		}
		cfg.Overrides = append(cfg.Overrides, ov)
	}
	return cfg, true, rows.Err()
}
