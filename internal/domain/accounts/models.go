package accounts

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type User struct {
	ID                  string     `json:"id"`
	Role                string     `json:"role"`
	Name                string     `json:"name,omitempty"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	GoogleID            *string    `json:"-"`
	GoogleEmail         *string    `json:"googleEmail,omitempty"`
	IsDisabled          bool       `json:"isDisabled"`
	ApprovalStatus      string     `json:"approvalStatus"`
	ApprovalRequestedAt *time.Time `json:"approvalRequestedAt,omitempty"`
	ApprovalDecidedAt   *time.Time `json:"approvalDecidedAt,omitempty"`
	ApprovalDecidedBy   *string    `json:"approvalDecidedBy,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// HasCredential reports whether the account can authenticate at all: a
// password hash or an external Google identity, at least one must exist.
func (u User) HasCredential() bool {
	return u.PasswordHash != "" || (u.GoogleID != nil && *u.GoogleID != "")
}

type RegisterInput struct {
	Role         string
	Name         string
	Email        string
	Password     string
	SecurityCode string
}

type CreateUserInput struct {
	Role     string
	Name     string
	Email    string
	Password string
}

type UpdateUserInput struct {
	Role       *string
	Name       *string
	IsDisabled *bool
	Password   *string
}
