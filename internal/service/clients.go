package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
)

func (s *LedgerService) CreateClient(ctx context.Context, ownerID uuid.UUID, request *domain.CreateClientRequest) (*domain.Client, error) {
	now := s.now()
	client := &domain.Client{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      request.Name,
		Document:  request.Document,
		Phone:     request.Phone,
		Email:     request.Email,
		Address:   request.Address,
		Notes:     request.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return client, nil
}

func (s *LedgerService) GetClient(ctx context.Context, ownerID, clientID uuid.UUID) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, ownerID, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(clientID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return client, nil
}

func (s *LedgerService) ListClients(ctx context.Context, ownerID uuid.UUID) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return clients, nil
}

func (s *LedgerService) UpdateClient(ctx context.Context, ownerID, clientID uuid.UUID, request *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	client.Name = request.Name
	client.Document = request.Document
	client.Phone = request.Phone
	client.Email = request.Email
	client.Address = request.Address
	client.Notes = request.Notes
	client.UpdatedAt = s.now()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return client, nil
}

// DeleteClient removes a client. Loans and their children go with it
// through the database cascade, so the owner's summary cache is dropped too.
func (s *LedgerService) DeleteClient(ctx context.Context, ownerID, clientID uuid.UUID) error {
	if _, err := s.GetClient(ctx, ownerID, clientID); err != nil {
		return err
	}

	if err := s.clients.Delete(ctx, ownerID, clientID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, ownerID)
	return nil
}
