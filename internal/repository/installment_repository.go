package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/empresta/ledger-engine/internal/domain"
)

type installmentRepository struct {
	db *sqlx.DB
}

func NewInstallmentRepository(db *sqlx.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.Installment, error) {
	query := `
		SELECT id, loan_id, number, amount, due_date, status, payment_date, created_at
		FROM installments
		WHERE loan_id = $1
		ORDER BY number
	`

	var installments []*domain.Installment
	err := r.db.SelectContext(ctx, &installments, query, loanID)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) CreateBatch(ctx context.Context, installments []*domain.Installment) error {
	query := `
		INSERT INTO installments (id, loan_id, number, amount, due_date, status, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, installment := range installments {
		_, err = tx.ExecContext(ctx, query,
			installment.ID,
			installment.LoanID,
			installment.Number,
			installment.Amount,
			installment.DueDate,
			installment.Status,
			installment.PaymentDate,
			installment.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *installmentRepository) GetByNumber(ctx context.Context, loanID uuid.UUID, number int) (*domain.Installment, error) {
	query := `
		SELECT id, loan_id, number, amount, due_date, status, payment_date, created_at
		FROM installments
		WHERE loan_id = $1 AND number = $2
	`

	var installment domain.Installment
	err := r.db.GetContext(ctx, &installment, query, loanID, number)
	if err != nil {
		return nil, err
	}

	return &installment, nil
}

func (r *installmentRepository) Update(ctx context.Context, installment *domain.Installment) error {
	query := `
		UPDATE installments
		SET status = $2, payment_date = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		installment.ID,
		installment.Status,
		installment.PaymentDate,
	)

	return err
}
