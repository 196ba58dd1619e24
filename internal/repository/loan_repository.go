package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/empresta/ledger-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, owner_id, client_id, principal, interest, total_amount, amount_paid,
		start_date, due_date, payment_mode, installment_count, status, created_at, updated_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.OwnerID,
		loan.ClientID,
		loan.Principal,
		loan.Interest,
		loan.TotalAmount,
		loan.AmountPaid,
		loan.StartDate,
		loan.DueDate,
		loan.PaymentMode,
		loan.InstallmentCount,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE owner_id = $1 AND id = $2
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, ownerID, id)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, ownerID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListByClient(ctx context.Context, ownerID, clientID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE owner_id = $1 AND client_id = $2
		ORDER BY created_at DESC
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListUnpaid(ctx context.Context) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status != $1
		ORDER BY due_date
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, domain.LoanStatusPaid)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET principal = $3, interest = $4, total_amount = $5, amount_paid = $6,
			due_date = $7, status = $8, updated_at = $9
		WHERE owner_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.OwnerID,
		loan.ID,
		loan.Principal,
		loan.Interest,
		loan.TotalAmount,
		loan.AmountPaid,
		loan.DueDate,
		loan.Status,
		time.Now(),
	)

	return err
}

func (r *loanRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM loans WHERE owner_id = $1 AND id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	return err
}
