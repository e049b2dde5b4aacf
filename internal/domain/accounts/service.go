package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pantry/internal/auth"
	"pantry/internal/platform/apperr"
	"pantry/internal/platform/querier"
)

const userColumns = `
  id, role, COALESCE(name, ''), email, COALESCE(password_hash, ''), google_id, google_email,
  is_disabled, approval_status, approval_requested_at, approval_decided_at, approval_decided_by, created_at
`

type Service struct {
	DB              querier.TxQuerier
	AdminSignupCode string
}

func NewService(db querier.TxQuerier, adminSignupCode string) *Service {
	return &Service{DB: db, AdminSignupCode: adminSignupCode}
}

func (s *Service) FindByID(ctx context.Context, id string) (User, error) {
	if err := uuid.Validate(id); err != nil {
		return User{}, apperr.NotFound("user not found")
	}
	return s.findOne(ctx, "WHERE id = $1", id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.findOne(ctx, "WHERE email = $1", normalizeEmail(email))
}

// Register creates a self-signup account. Employees start pending approval;
// admins need the signup code and are approved immediately.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	if input.Role != RoleAdmin && input.Role != RoleEmployee {
		return User{}, apperr.Validation("role must be admin or employee")
	}
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, apperr.Validation("a valid email is required")
	}
	if len(input.Password) < 8 {
		return User{}, apperr.Validation("password must be at least 8 characters")
	}
	if input.Role == RoleAdmin && strings.TrimSpace(input.SecurityCode) != s.AdminSignupCode {
		return User{}, apperr.Validation("invalid admin security code")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	approval := ApprovalPending
	if input.Role == RoleAdmin {
		approval = ApprovalApproved
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO users (role, name, email, password_hash, approval_status, approval_requested_at, approval_decided_at)
    VALUES ($1, NULLIF($2, ''), $3, $4, $5, now(), CASE WHEN $5 = 'approved' THEN now() END)
    RETURNING id
  `, input.Role, strings.TrimSpace(input.Name), email, hash, approval).Scan(&id)
	if err != nil {
		return User{}, mapUniqueViolation(err, "email already in use")
	}
	return s.FindByID(ctx, id)
}

// CreateByAdmin provisions a pre-approved account.
func (s *Service) CreateByAdmin(ctx context.Context, adminID string, input CreateUserInput) (User, error) {
	if input.Role != RoleAdmin && input.Role != RoleEmployee {
		return User{}, apperr.Validation("role must be admin or employee")
	}
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, apperr.Validation("a valid email is required")
	}

	var hash *string
	if input.Password != "" {
		if len(input.Password) < 8 {
			return User{}, apperr.Validation("password must be at least 8 characters")
		}
		hashed, err := auth.HashPassword(input.Password)
		if err != nil {
			return User{}, err
		}
		hash = &hashed
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (role, name, email, password_hash, approval_status, approval_requested_at, approval_decided_at, approval_decided_by)
    VALUES ($1, NULLIF($2, ''), $3, $4, 'approved', now(), now(), $5)
    RETURNING id
  `, input.Role, strings.TrimSpace(input.Name), email, hash, adminID).Scan(&id)
	if err != nil {
		return User{}, mapUniqueViolation(err, "email already in use")
	}
	return s.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.findMany(ctx, "ORDER BY created_at DESC")
}

func (s *Service) Update(ctx context.Context, id string, input UpdateUserInput) (User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if input.Role != nil {
		if *input.Role != RoleAdmin && *input.Role != RoleEmployee {
			return User{}, apperr.Validation("role must be admin or employee")
		}
		user.Role = *input.Role
	}
	name := user.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	disabled := user.IsDisabled
	if input.IsDisabled != nil {
		disabled = *input.IsDisabled
	}

	var hash *string
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return User{}, apperr.Validation("password must be at least 8 characters")
		}
		hashed, err := auth.HashPassword(*input.Password)
		if err != nil {
			return User{}, err
		}
		hash = &hashed
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE users
    SET role = $2, name = NULLIF($3, ''), is_disabled = $4,
        password_hash = COALESCE($5, password_hash), updated_at = now()
    WHERE id = $1
  `, id, user.Role, name, disabled, hash)
	if err != nil {
		return User{}, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes an employee account. Admin accounts and the acting admin's
// own account are not deletable.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return apperr.Validation("cannot delete your own account")
	}
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == RoleAdmin {
		return apperr.Validation("cannot delete admin account")
	}
	_, err = s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// ListApprovals returns accounts by approval status; "all" lists everyone.
func (s *Service) ListApprovals(ctx context.Context, status string) ([]User, error) {
	switch status {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return s.findMany(ctx, "WHERE approval_status = $1 ORDER BY approval_requested_at DESC NULLS LAST, created_at DESC", status)
	case "all":
		return s.findMany(ctx, "ORDER BY approval_requested_at DESC NULLS LAST, created_at DESC")
	default:
		return nil, apperr.Validation("status must be pending, approved, rejected or all")
	}
}

// DecideApproval approves or rejects a pending signup. Admin accounts can
// never be rejected.
func (s *Service) DecideApproval(ctx context.Context, adminID, userID, status string) (User, error) {
	if status != ApprovalApproved && status != ApprovalRejected {
		return User{}, apperr.Validation("status must be approved or rejected")
	}
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if user.Role == RoleAdmin && status == ApprovalRejected {
		return User{}, apperr.Validation("cannot reject admin account")
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE users
    SET approval_status = $2, approval_decided_at = now(), approval_decided_by = $3,
        approval_requested_at = COALESCE(approval_requested_at, created_at), updated_at = now()
    WHERE id = $1
  `, userID, status, adminID)
	if err != nil {
		return User{}, err
	}
	return s.FindByID(ctx, userID)
}

func (s *Service) findOne(ctx context.Context, where string, args ...any) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users "+where, args...).Scan(
		&u.ID, &u.Role, &u.Name, &u.Email, &u.PasswordHash, &u.GoogleID, &u.GoogleEmail,
		&u.IsDisabled, &u.ApprovalStatus, &u.ApprovalRequestedAt, &u.ApprovalDecidedAt,
		&u.ApprovalDecidedBy, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) findMany(ctx context.Context, tail string, args ...any) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users "+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Role, &u.Name, &u.Email, &u.PasswordHash, &u.GoogleID, &u.GoogleEmail,
			&u.IsDisabled, &u.ApprovalStatus, &u.ApprovalRequestedAt, &u.ApprovalDecidedAt,
			&u.ApprovalDecidedBy, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapUniqueViolation(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Conflict("%s", message)
	}
	return err
}
