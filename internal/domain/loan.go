package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persisted loan statuses. Overdue is never stored; it is derived at read
// time by the ledger package.
const (
	LoanStatusActive = "active"
	LoanStatusPaid   = "paid"
)

const (
	PaymentModeLumpSum     = "lump_sum"
	PaymentModeInstallment = "installment"
)

// Display statuses derived from a loan and the current date.
const (
	DisplayStatusActive  = "active"
	DisplayStatusOverdue = "overdue"
	DisplayStatusPaid    = "paid"
)

// Loan represents a single lending contract to a client
type Loan struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	OwnerID          uuid.UUID       `json:"owner_id" db:"owner_id"`
	ClientID         uuid.UUID       `json:"client_id" db:"client_id"`
	Principal        decimal.Decimal `json:"principal" db:"principal"`
	Interest         decimal.Decimal `json:"interest" db:"interest"`
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
	AmountPaid       decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	StartDate        time.Time       `json:"start_date" db:"start_date"`
	DueDate          time.Time       `json:"due_date" db:"due_date"`
	PaymentMode      string          `json:"payment_mode" db:"payment_mode"`
	InstallmentCount int             `json:"installment_count" db:"installment_count"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// Remaining returns the unpaid balance, clamped to zero.
func (l *Loan) Remaining() decimal.Decimal {
	remaining := l.TotalAmount.Sub(l.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	ClientID         string          `json:"client_id" validate:"required,uuid4"`
	Principal        decimal.Decimal `json:"principal" validate:"required,gt=0"`
	Interest         decimal.Decimal `json:"interest" validate:"gte=0"`
	StartDate        string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	DueDate          string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	PaymentMode      string          `json:"payment_mode" validate:"required,oneof=lump_sum installment"`
	InstallmentCount int             `json:"installment_count" validate:"omitempty,gte=1"`
}

type UpdateLoanRequest struct {
	Principal decimal.Decimal `json:"principal" validate:"required,gt=0"`
	Interest  decimal.Decimal `json:"interest" validate:"gte=0"`
	DueDate   string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// LoanResponse decorates a loan with its derived display status.
type LoanResponse struct {
	*Loan
	DisplayStatus string `json:"display_status"`
	ClientName    string `json:"client_name,omitempty"`
}
