package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/empresta/ledger-engine/internal/domain"
)

type signatureRepository struct {
	db *sqlx.DB
}

func NewSignatureRepository(db *sqlx.DB) SignatureRepository {
	return &signatureRepository{db: db}
}

func (r *signatureRepository) Get(ctx context.Context, loanID uuid.UUID) (*domain.Signature, error) {
	query := `
		SELECT loan_id, image, created_at, updated_at
		FROM signatures
		WHERE loan_id = $1
	`

	var signature domain.Signature
	err := r.db.GetContext(ctx, &signature, query, loanID)
	if err != nil {
		return nil, err
	}

	return &signature, nil
}

func (r *signatureRepository) Put(ctx context.Context, signature *domain.Signature) error {
	query := `
		INSERT INTO signatures (loan_id, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (loan_id) DO UPDATE SET image = EXCLUDED.image, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		signature.LoanID,
		signature.Image,
		signature.CreatedAt,
		signature.UpdatedAt,
	)

	return err
}
