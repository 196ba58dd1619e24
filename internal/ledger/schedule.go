package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/utils"
)

// BuildSchedule expands an installment-mode loan into its dated installment
// records, ordered by number. Each installment carries an even 2-decimal
// share of the total; the final one absorbs the rounding remainder so the
// amounts always sum to the loan total exactly. Due dates advance one
// calendar month per installment from the start date, clamped at month-end
// boundaries.
//
// The function only computes the plan. Persisting it exactly once is the
// caller's concern.
func BuildSchedule(loan *domain.Loan, now time.Time) ([]*domain.Installment, error) {
	if loan.PaymentMode != domain.PaymentModeInstallment {
		return nil, customError.ErrNotInstallmentLoan
	}
	if loan.InstallmentCount < 1 {
		return nil, customError.ErrInvalidInstallmentCount
	}

	n := loan.InstallmentCount
	share := utils.RoundMoney(loan.TotalAmount.Div(decimal.NewFromInt(int64(n))))

	installments := make([]*domain.Installment, 0, n)
	for i := 1; i <= n; i++ {
		amount := share
		if i == n {
			// Remainder lands on the last installment.
			amount = loan.TotalAmount.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))
		}

		installments = append(installments, &domain.Installment{
			ID:        uuid.New(),
			LoanID:    loan.ID,
			Number:    i,
			Amount:    amount,
			DueDate:   utils.AddMonths(loan.StartDate, i),
			Status:    domain.InstallmentStatusPending,
			CreatedAt: now,
		})
	}

	return installments, nil
}
