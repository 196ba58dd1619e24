package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/empresta/ledger-engine/internal/domain"
)

type collectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepository(db *sqlx.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, message *domain.CollectionMessage) error {
	query := `
		INSERT INTO collection_messages (id, owner_id, loan_id, client_id, message, sent, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.OwnerID,
		message.LoanID,
		message.ClientID,
		message.Message,
		message.Sent,
		message.SentAt,
		message.CreatedAt,
	)

	return err
}

func (r *collectionRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.CollectionMessage, error) {
	query := `
		SELECT id, owner_id, loan_id, client_id, message, sent, sent_at, created_at
		FROM collection_messages
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var messages []*domain.CollectionMessage
	err := r.db.SelectContext(ctx, &messages, query, ownerID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}
