package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionMessage records a payment reminder dispatched to a client.
// Delivery itself happens outside this system; the record keeps the text
// and when it went out.
type CollectionMessage struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	OwnerID   uuid.UUID  `json:"owner_id" db:"owner_id"`
	LoanID    uuid.UUID  `json:"loan_id" db:"loan_id"`
	ClientID  uuid.UUID  `json:"client_id" db:"client_id"`
	Message   string     `json:"message" db:"message"`
	Sent      bool       `json:"sent" db:"sent"`
	SentAt    *time.Time `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type CreateCollectionRequest struct {
	Message string `json:"message"`
}
