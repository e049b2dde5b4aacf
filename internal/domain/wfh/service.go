package wfh

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pantry/internal/platform/apperr"
	"pantry/internal/platform/datekey"
	"pantry/internal/platform/querier"
)

const requestColumns = "id, user_id, date_key, status, decided_at, decided_by, created_at, updated_at"

type Service struct {
	DB querier.TxQuerier
	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(db querier.TxQuerier) *Service {
	return &Service{DB: db, Now: time.Now}
}

// ApprovedDateForWeek returns the approved WFH date key for the user within
// the week containing key, or "" when there is none. At most one approved
// request per user per week is maintained by Decide; the latest-updated row
// wins if the invariant is ever violated.
func (s *Service) ApprovedDateForWeek(ctx context.Context, userID, key string) (string, error) {
	start, end, err := WeekSpanKeys(key)
	if err != nil {
		return "", apperr.Validation("invalid date key %q", key)
	}

	var approved string
	err = s.DB.QueryRow(ctx, `
    SELECT date_key FROM wfh_requests
    WHERE user_id = $1 AND status = $2 AND date_key >= $3 AND date_key <= $4
    ORDER BY updated_at DESC
    LIMIT 1
  `, userID, StatusApproved, start, end).Scan(&approved)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return approved, nil
}

// IsWfhDay applies the free-day precedence for one user and date.
func (s *Service) IsWfhDay(ctx context.Context, userID, key string) (bool, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return false, apperr.Validation("invalid date key %q", key)
	}
	approved, err := s.ApprovedDateForWeek(ctx, userID, key)
	if err != nil {
		return false, err
	}
	return ResolveFreeDay(approved, key, day), nil
}

// StatusForDate returns the day-view snapshot: resolved free-day flag plus the
// user's most recent request for that exact date, if any.
func (s *Service) StatusForDate(ctx context.Context, userID, key string) (DayStatus, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return DayStatus{}, apperr.Validation("invalid date key %q", key)
	}
	approved, err := s.ApprovedDateForWeek(ctx, userID, key)
	if err != nil {
		return DayStatus{}, err
	}

	status := DayStatus{
		IsWfh:         ResolveFreeDay(approved, key, day),
		RequestStatus: "none",
	}
	if approved != "" {
		status.ApprovedDateKey = &approved
	}

	var req Request
	err = s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+` FROM wfh_requests
    WHERE user_id = $1 AND date_key = $2
    ORDER BY created_at DESC
    LIMIT 1
  `, userID, key).Scan(&req.ID, &req.UserID, &req.DateKey, &req.Status, &req.DecidedAt, &req.DecidedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return DayStatus{}, err
	}
	if err == nil {
		status.RequestStatus = req.Status
		status.RequestID = &req.ID
	}
	return status, nil
}

// Request files a pending WFH request for a weekday in the current week.
// Any other pending request the user has in that week is demoted to replaced.
func (s *Service) Request(ctx context.Context, userID, key string) (Request, error) {
	day, err := datekey.Parse(key)
	if err != nil {
		return Request{}, apperr.Validation("invalid date key %q", key)
	}

	now := s.Now()
	today := datekey.Today(now)
	if day.Before(today) {
		return Request{}, apperr.Validation("cannot request past days")
	}
	if datekey.IsWeekend(day) {
		return Request{}, apperr.Validation("weekend is not selectable")
	}
	if datekey.IsFriday(day) {
		return Request{}, apperr.Validation("friday is already your default WFH day")
	}
	if !datekey.StartOfWeekMonday(day).Equal(datekey.StartOfWeekMonday(today)) {
		return Request{}, apperr.Validation("WFH can only be requested for the current week")
	}

	start, end, err := WeekSpanKeys(key)
	if err != nil {
		return Request{}, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE wfh_requests
    SET status = $5, decided_at = now(), updated_at = now()
    WHERE user_id = $1 AND status = $2 AND date_key >= $3 AND date_key <= $4
  `, userID, StatusPending, start, end, StatusReplaced); err != nil {
		return Request{}, err
	}

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO wfh_requests (user_id, date_key, status) VALUES ($1, $2, $3) RETURNING id
  `, userID, key, StatusPending).Scan(&id); err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return s.findByID(ctx, id)
}

// Decide applies an admin decision. Approving demotes every other approved
// request by the same user in the same week to replaced; demotion and approval
// commit together, so two racing approvals cannot both stay approved.
func (s *Service) Decide(ctx context.Context, adminID, requestID, status string) (Request, error) {
	if status != StatusApproved && status != StatusRejected && status != StatusRevoked {
		return Request{}, apperr.Validation("status must be approved, rejected or revoked")
	}

	req, err := s.findByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if !CanTransition(req.Status, status) {
		return Request{}, apperr.Conflict("request is already %s", req.Status)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if status == StatusApproved {
		start, end, err := WeekSpanKeys(req.DateKey)
		if err != nil {
			return Request{}, err
		}
		if _, err := tx.Exec(ctx, `
      UPDATE wfh_requests
      SET status = $5, decided_at = now(), decided_by = $6, updated_at = now()
      WHERE user_id = $1 AND status = $2 AND date_key >= $3 AND date_key <= $4 AND id <> $7
    `, req.UserID, StatusApproved, start, end, StatusReplaced, adminID, requestID); err != nil {
			return Request{}, err
		}
	}

	if _, err := tx.Exec(ctx, `
    UPDATE wfh_requests
    SET status = $2, decided_at = now(), decided_by = $3, updated_at = now()
    WHERE id = $1
  `, requestID, status, adminID); err != nil {
		return Request{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return s.findByID(ctx, requestID)
}

// ListForWeek returns all requests whose date falls in the week containing
// key, newest first, optionally filtered by status.
func (s *Service) ListForWeek(ctx context.Context, key, status string) (start, end string, requests []AdminRequest, err error) {
	start, end, err = WeekSpanKeys(key)
	if err != nil {
		return "", "", nil, apperr.Validation("invalid date key %q", key)
	}
	if status != "" {
		switch status {
		case StatusPending, StatusApproved, StatusRejected, StatusReplaced, StatusRevoked:
		default:
			return "", "", nil, apperr.Validation("unknown status %q", status)
		}
	}

	query := `
    SELECT r.id, r.user_id, r.date_key, r.status, r.decided_at, r.decided_by, r.created_at, r.updated_at,
           COALESCE(u.name, ''), u.email, u.role
    FROM wfh_requests r
    JOIN users u ON u.id = r.user_id
    WHERE r.date_key >= $1 AND r.date_key <= $2
  `
	args := []any{start, end}
	if status != "" {
		query += " AND r.status = $3"
		args = append(args, status)
	}
	query += " ORDER BY r.created_at DESC LIMIT 2000"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return "", "", nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var req AdminRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.DateKey, &req.Status, &req.DecidedAt, &req.DecidedBy,
			&req.CreatedAt, &req.UpdatedAt, &req.UserName, &req.UserEmail, &req.UserRole,
		); err != nil {
			return "", "", nil, err
		}
		requests = append(requests, req)
	}
	return start, end, requests, rows.Err()
}

func (s *Service) findByID(ctx context.Context, id string) (Request, error) {
	if err := uuid.Validate(id); err != nil {
		return Request{}, apperr.NotFound("request not found")
	}
	var req Request
	err := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM wfh_requests WHERE id = $1", id).
		Scan(&req.ID, &req.UserID, &req.DateKey, &req.Status, &req.DecidedAt, &req.DecidedBy, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, apperr.NotFound("request not found")
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}
