package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"pantry/internal/auth"
	"pantry/internal/platform/config"
)

var defaultDrinks = []string{"Tea", "Coffee", "Green Tea", "Lemon Tea", "Black Coffee", "Plain Milk"}

var defaultSnacks = []string{"Maggie", "Sandwich", "Bun Maska"}

// Seed loads the default catalog when the table is empty and, when configured,
// a bootstrap admin account. Safe to run on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var itemCount int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM catalog_items").Scan(&itemCount); err != nil {
		return err
	}
	if itemCount == 0 {
		for _, name := range defaultDrinks {
			if _, err := pool.Exec(ctx, "INSERT INTO catalog_items (type, name) VALUES ('drink', $1)", name); err != nil {
				return err
			}
		}
		for _, name := range defaultSnacks {
			if _, err := pool.Exec(ctx, "INSERT INTO catalog_items (type, name) VALUES ('snack', $1)", name); err != nil {
				return err
			}
		}
		slog.Info("seeded default catalog", "drinks", len(defaultDrinks), "snacks", len(defaultSnacks))
	}

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var adminExists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", cfg.SeedAdminEmail).Scan(&adminExists); err != nil {
		return err
	}
	if adminExists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
    INSERT INTO users (role, name, email, password_hash, approval_status, approval_requested_at, approval_decided_at)
    VALUES ('admin', 'Administrator', $1, $2, 'approved', now(), now())
  `, cfg.SeedAdminEmail, hash); err != nil {
		return err
	}
	slog.Info("seeded bootstrap admin", "email", cfg.SeedAdminEmail)
	return nil
}
