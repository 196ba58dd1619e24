package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/empresta/ledger-engine/internal/domain"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Notification, error) {
	query := `
		SELECT id, owner_id, loan_id, client_id, kind, message, read, created_at
		FROM notifications
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var notifications []*domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, ownerID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) ListAll(ctx context.Context) ([]*domain.Notification, error) {
	query := `
		SELECT id, owner_id, loan_id, client_id, kind, message, read, created_at
		FROM notifications
	`

	var notifications []*domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// InsertIfAbsent relies on the unique index on (loan_id, kind) so the
// check-then-insert race between concurrent sweeps resolves in the database,
// not in application memory.
func (r *notificationRepository) InsertIfAbsent(ctx context.Context, n *domain.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (id, owner_id, loan_id, client_id, kind, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (loan_id, kind) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.OwnerID,
		n.LoanID,
		n.ClientID,
		n.Kind,
		n.Message,
		n.Read,
		n.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = true
		WHERE owner_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	return err
}
