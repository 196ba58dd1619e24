// Package ledger holds the loan ledger engine: status classification,
// financial aggregation, installment scheduling and reminder planning.
// Every function here is a pure computation over already-fetched entities
// and the supplied clock; persistence belongs to the callers.
package ledger

import (
	"time"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/pkg/utils"
)

// Classify derives the display status of a loan at a given moment.
// Paid is terminal and always wins. A loan that is not paid is overdue
// when its due date falls on an earlier calendar day than now; the
// comparison ignores time of day. Anything else in the stored status
// column (including legacy persisted "overdue" values) is treated as
// active for derivation purposes.
func Classify(loan *domain.Loan, now time.Time) string {
	if loan.Status == domain.LoanStatusPaid {
		return domain.DisplayStatusPaid
	}
	if utils.IsBeforeDay(loan.DueDate, now) {
		return domain.DisplayStatusOverdue
	}
	return domain.DisplayStatusActive
}

// IsDueSoon reports whether an unpaid loan falls inside the reminder
// window: due today or within thresholdDays from now.
func IsDueSoon(loan *domain.Loan, now time.Time, thresholdDays int) bool {
	if loan.Status == domain.LoanStatusPaid {
		return false
	}
	days := utils.DaysUntil(loan.DueDate, now)
	return days >= 0 && days <= thresholdDays
}
