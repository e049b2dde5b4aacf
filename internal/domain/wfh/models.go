package wfh

import "time"

// Request lifecycle: pending -> approved | rejected | replaced | revoked;
// approved -> replaced (newer approval in the same week) | revoked (admin).
// rejected, replaced and revoked are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusReplaced = "replaced"
	StatusRevoked  = "revoked"
)

// CanTransition reports whether a request in the current status may move to
// next. Rejection only applies to pending requests; revocation and
// replacement also undo an approval.
func CanTransition(current, next string) bool {
	switch next {
	case StatusApproved, StatusRejected:
		return current == StatusPending
	case StatusReplaced, StatusRevoked:
		return current == StatusPending || current == StatusApproved
	default:
		return false
	}
}

type Request struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	DateKey   string     `json:"dateKey"`
	Status    string     `json:"status"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	DecidedBy *string    `json:"decidedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AdminRequest decorates a request with requester identity for admin listings.
type AdminRequest struct {
	Request
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	UserRole  string `json:"userRole"`
}

// DayStatus is what the day view needs to render the WFH banner.
type DayStatus struct {
	IsWfh           bool    `json:"isWfh"`
	ApprovedDateKey *string `json:"approvedDateKey"`
	RequestStatus   string  `json:"requestStatus"`
	RequestID       *string `json:"requestId"`
}
