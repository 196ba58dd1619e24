package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/utils"
)

// CreateCollectionMessage records a payment reminder for a loan. When no
// text is supplied a default reminder is built from the client's name and
// the loan's open balance. Dispatch happens outside this system; the record
// is marked sent immediately.
func (s *LedgerService) CreateCollectionMessage(ctx context.Context, ownerID, loanID uuid.UUID, text string) (*domain.CollectionMessage, error) {
	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}

	client, err := s.GetClient(ctx, ownerID, loan.ClientID)
	if err != nil {
		return nil, err
	}

	if text == "" {
		text = fmt.Sprintf(
			"Olá %s! Lembrete de pagamento: R$ %s com vencimento em %s.",
			client.Name,
			loan.Remaining().StringFixed(2),
			utils.FormatDate(loan.DueDate),
		)
	}

	now := s.now()
	message := &domain.CollectionMessage{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		LoanID:    loanID,
		ClientID:  client.ID,
		Message:   text,
		Sent:      true,
		SentAt:    &now,
		CreatedAt: now,
	}

	if err := s.collections.Create(ctx, message); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return message, nil
}

func (s *LedgerService) ListCollectionMessages(ctx context.Context, ownerID uuid.UUID) ([]*domain.CollectionMessage, error) {
	messages, err := s.collections.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return messages, nil
}
