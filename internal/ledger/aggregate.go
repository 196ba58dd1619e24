package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/pkg/utils"
)

// Summary carries the portfolio figures shown on dashboards and reports.
// TotalLent follows the books of the original ledger: it sums the total to
// be repaid (principal plus fee), not the principal disbursed.
type Summary struct {
	TotalLent       decimal.Decimal `json:"total_lent"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	OverdueExposure decimal.Decimal `json:"overdue_exposure"`
	RealizedProfit  decimal.Decimal `json:"realized_profit"`
	ProjectedProfit decimal.Decimal `json:"projected_profit"`
	OpenLoans       int             `json:"open_loans"`
	OverdueLoans    int             `json:"overdue_loans"`
	DueSoonLoans    int             `json:"due_soon_loans"`
}

// Summarize reduces a loan collection to its portfolio figures at a given
// moment. The reduction never mutates its input and is independent of the
// iteration order of loans. Per-loan balances are clamped to zero before
// summing, and every sum is rounded to 2 decimals.
func Summarize(loans []*domain.Loan, now time.Time, dueSoonDays int) Summary {
	s := Summary{
		TotalLent:       decimal.Zero,
		TotalReceived:   decimal.Zero,
		Outstanding:     decimal.Zero,
		OverdueExposure: decimal.Zero,
		RealizedProfit:  decimal.Zero,
		ProjectedProfit: decimal.Zero,
	}

	for _, loan := range loans {
		s.TotalLent = s.TotalLent.Add(loan.TotalAmount)
		s.TotalReceived = s.TotalReceived.Add(loan.AmountPaid)
		s.ProjectedProfit = s.ProjectedProfit.Add(loan.Interest)

		switch Classify(loan, now) {
		case domain.DisplayStatusPaid:
			s.RealizedProfit = s.RealizedProfit.Add(loan.Interest)
		case domain.DisplayStatusOverdue:
			s.OpenLoans++
			s.OverdueLoans++
			s.Outstanding = s.Outstanding.Add(loan.Remaining())
			s.OverdueExposure = s.OverdueExposure.Add(loan.Remaining())
		case domain.DisplayStatusActive:
			s.OpenLoans++
			s.Outstanding = s.Outstanding.Add(loan.Remaining())
		}

		if IsDueSoon(loan, now, dueSoonDays) {
			s.DueSoonLoans++
		}
	}

	s.TotalLent = utils.RoundMoney(s.TotalLent)
	s.TotalReceived = utils.RoundMoney(s.TotalReceived)
	s.Outstanding = utils.RoundMoney(s.Outstanding)
	s.OverdueExposure = utils.RoundMoney(s.OverdueExposure)
	s.RealizedProfit = utils.RoundMoney(s.RealizedProfit)
	s.ProjectedProfit = utils.RoundMoney(s.ProjectedProfit)

	return s
}

// FilterByClient returns the subset of loans belonging to one client,
// preserving order.
func FilterByClient(loans []*domain.Loan, clientID uuid.UUID) []*domain.Loan {
	filtered := make([]*domain.Loan, 0, len(loans))
	for _, loan := range loans {
		if loan.ClientID == clientID {
			filtered = append(filtered, loan)
		}
	}
	return filtered
}
