package domain

import (
	"time"

	"github.com/google/uuid"
)

// Signature is the captured digital signature image for a loan, one per loan.
type Signature struct {
	LoanID    uuid.UUID `json:"loan_id" db:"loan_id"`
	Image     []byte    `json:"image" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type PutSignatureRequest struct {
	Image string `json:"image" validate:"required,base64"`
}
