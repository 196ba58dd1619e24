package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/internal/ledger"
	customError "github.com/empresta/ledger-engine/pkg/errors"
)

// GetInstallments returns a loan's installments, materializing the schedule
// on first access. Once records exist they are returned as stored and never
// regenerated, so repeated calls are no-ops beyond the first.
func (s *LedgerService) GetInstallments(ctx context.Context, ownerID, loanID uuid.UUID) ([]*domain.Installment, error) {
	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}

	existing, err := s.installments.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	if loan.PaymentMode != domain.PaymentModeInstallment {
		return []*domain.Installment{}, nil
	}

	schedule, err := ledger.BuildSchedule(loan, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.installments.CreateBatch(ctx, schedule); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return schedule, nil
}

// PayInstallment settles one installment and rolls its amount into the
// loan's running paid total. Paying the final pending installment settles
// the loan itself.
func (s *LedgerService) PayInstallment(ctx context.Context, ownerID, loanID uuid.UUID, number int) (*domain.Installment, error) {
	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}

	installment, err := s.installments.GetByNumber(ctx, loanID, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInstallmentNotFound(loanID.String(), number)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if installment.Status == domain.InstallmentStatusPaid {
		return installment, nil
	}

	now := s.now()
	installment.Status = domain.InstallmentStatusPaid
	installment.PaymentDate = &now

	if err := s.installments.Update(ctx, installment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if loan.Status != domain.LoanStatusPaid {
		if _, err := s.RegisterPayment(ctx, ownerID, loanID, installment.Amount); err != nil {
			return nil, err
		}
	}

	return installment, nil
}
