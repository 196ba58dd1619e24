package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
)

func (s *LedgerService) GetSignature(ctx context.Context, ownerID, loanID uuid.UUID) (*domain.Signature, error) {
	if _, err := s.getLoan(ctx, ownerID, loanID); err != nil {
		return nil, err
	}

	signature, err := s.signatures.Get(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapSignatureNotFound(loanID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return signature, nil
}

// PutSignature stores or replaces the captured signature image for a loan.
func (s *LedgerService) PutSignature(ctx context.Context, ownerID, loanID uuid.UUID, encodedImage string) (*domain.Signature, error) {
	if _, err := s.getLoan(ctx, ownerID, loanID); err != nil {
		return nil, err
	}

	image, err := base64.StdEncoding.DecodeString(encodedImage)
	if err != nil {
		return nil, customError.WrapValidationFailed(err)
	}

	now := s.now()
	signature := &domain.Signature{
		LoanID:    loanID,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.signatures.Put(ctx, signature); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return signature, nil
}
