package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds. At most one notification of each kind may exist per
// loan, enforced by a unique index on (loan_id, kind).
const (
	NotificationDueSoon = "due_soon"
	NotificationOverdue = "overdue"
	NotificationPaid    = "paid"
)

type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	LoanID    uuid.UUID `json:"loan_id" db:"loan_id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Kind      string    `json:"kind" db:"kind"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SweepResponse struct {
	Created int `json:"created"`
}
