package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
)

// Installment is one scheduled partial payment of an installment-mode loan.
// The set is generated once per loan and never regenerated.
type Installment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	LoanID      uuid.UUID       `json:"loan_id" db:"loan_id"`
	Number      int             `json:"number" db:"number"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	DueDate     time.Time       `json:"due_date" db:"due_date"`
	Status      string          `json:"status" db:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty" db:"payment_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type InstallmentsResponse struct {
	LoanID       uuid.UUID      `json:"loan_id"`
	Installments []*Installment `json:"installments"`
}
