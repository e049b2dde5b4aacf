package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pantry/internal/platform/apperr"
	"pantry/internal/platform/querier"
)

const itemColumns = "id, type, name, is_active, cost, created_at, updated_at"

type Service struct {
	DB querier.Querier
}

func NewService(db querier.Querier) *Service {
	return &Service{DB: db}
}

// List returns catalog items for drop-downs. Non-admin callers only ever see
// active items; admins may ask for the full set.
func (s *Service) List(ctx context.Context, itemType string, includeInactive bool) ([]Item, error) {
	query := "SELECT " + itemColumns + " FROM catalog_items"
	var clauses []string
	var args []any
	if itemType != "" {
		if itemType != TypeDrink && itemType != TypeSnack {
			return nil, apperr.Validation("type must be drink or snack")
		}
		args = append(args, itemType)
		clauses = append(clauses, "type = $1")
	}
	if !includeInactive {
		clauses = append(clauses, "is_active")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY type, name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Type, &item.Name, &item.IsActive, &item.Cost, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Service) FindByID(ctx context.Context, id string) (Item, error) {
	if err := uuid.Validate(id); err != nil {
		return Item{}, apperr.Validation("invalid item id")
	}
	var item Item
	err := s.DB.QueryRow(ctx, "SELECT "+itemColumns+" FROM catalog_items WHERE id = $1", id).
		Scan(&item.ID, &item.Type, &item.Name, &item.IsActive, &item.Cost, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, apperr.NotFound("catalog item not found")
	}
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// ResolveActiveTyped validates an item reference on a selection write: the id
// must exist, be active, and carry the expected type.
func (s *Service) ResolveActiveTyped(ctx context.Context, id, expectedType string) (Item, error) {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if err := selectableAs(item, expectedType); err != nil {
		return Item{}, err
	}
	return item, nil
}

// selectableAs checks that an item may back a selection field of the given
// type. Inactive items are hidden (not found); a live item of the wrong type
// is a caller mistake.
func selectableAs(item Item, expectedType string) error {
	if !item.IsActive {
		return apperr.NotFound("catalog item not found or inactive")
	}
	if item.Type != expectedType {
		return apperr.Validation("item must be of type %s", expectedType)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, input CreateItemInput) (Item, error) {
	if input.Type != TypeDrink && input.Type != TypeSnack {
		return Item{}, apperr.Validation("type must be drink or snack")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 60 {
		return Item{}, apperr.Validation("name must be 1-60 characters")
	}
	if input.Cost != nil && *input.Cost < 0 {
		return Item{}, apperr.Validation("cost must be non-negative")
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO catalog_items (type, name, cost) VALUES ($1, $2, $3) RETURNING id
  `, input.Type, name, input.Cost).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Item{}, apperr.Conflict("an item named %q already exists for that type", name)
		}
		return Item{}, err
	}
	return s.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateItemInput) (Item, error) {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return Item{}, err
	}

	name := item.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" || len(name) > 60 {
			return Item{}, apperr.Validation("name must be 1-60 characters")
		}
	}
	active := item.IsActive
	if input.IsActive != nil {
		active = *input.IsActive
	}
	cost := item.Cost
	if input.CostSet {
		if input.Cost != nil && *input.Cost < 0 {
			return Item{}, apperr.Validation("cost must be non-negative")
		}
		cost = input.Cost
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE catalog_items SET name = $2, is_active = $3, cost = $4, updated_at = now() WHERE id = $1
  `, id, name, active, cost)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Item{}, apperr.Conflict("an item named %q already exists for that type", name)
		}
		return Item{}, err
	}
	return s.FindByID(ctx, id)
}

// Delete hard-deletes an item. Historical selections keep their rows; the
// reference columns are nulled by the schema, so old picks surface as
// unresolved in views.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	_, err := s.DB.Exec(ctx, "DELETE FROM catalog_items WHERE id = $1", id)
	return err
}
