package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/empresta/ledger-engine/internal/domain"
)

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (id, owner_id, name, document, phone, email, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.OwnerID,
		client.Name,
		client.Document,
		client.Phone,
		client.Email,
		client.Address,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)

	return err
}

func (r *clientRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Client, error) {
	query := `
		SELECT id, owner_id, name, document, phone, email, address, notes, created_at, updated_at
		FROM clients
		WHERE owner_id = $1 AND id = $2
	`

	var client domain.Client
	err := r.db.GetContext(ctx, &client, query, ownerID, id)
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Client, error) {
	query := `
		SELECT id, owner_id, name, document, phone, email, address, notes, created_at, updated_at
		FROM clients
		WHERE owner_id = $1
		ORDER BY name
	`

	var clients []*domain.Client
	err := r.db.SelectContext(ctx, &clients, query, ownerID)
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $3, document = $4, phone = $5, email = $6, address = $7, notes = $8, updated_at = $9
		WHERE owner_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query,
		client.OwnerID,
		client.ID,
		client.Name,
		client.Document,
		client.Phone,
		client.Email,
		client.Address,
		client.Notes,
		time.Now(),
	)

	return err
}

func (r *clientRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE owner_id = $1 AND id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	return err
}
