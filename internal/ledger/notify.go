package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/pkg/utils"
)

type notificationKey struct {
	loanID uuid.UUID
	kind   string
}

// PlanReminders decides which reminder notifications are missing for the
// given loans. A loan past its due date gets an overdue reminder; a loan
// inside the due-soon window gets a due-soon reminder. Each (loan, kind)
// pair fires at most once: pairs already present in existing are skipped.
// A loan that enters the window and later goes overdue collects both
// reminders across successive sweeps.
//
// The returned notifications are not persisted here; callers insert them
// through an insert-if-absent primitive so concurrent sweeps stay safe.
func PlanReminders(loans []*domain.Loan, existing []*domain.Notification, now time.Time, thresholdDays int) []*domain.Notification {
	seen := make(map[notificationKey]bool, len(existing))
	for _, n := range existing {
		seen[notificationKey{loanID: n.LoanID, kind: n.Kind}] = true
	}

	var planned []*domain.Notification
	for _, loan := range loans {
		if loan.Status == domain.LoanStatusPaid {
			continue
		}

		if Classify(loan, now) == domain.DisplayStatusOverdue {
			if !seen[notificationKey{loanID: loan.ID, kind: domain.NotificationOverdue}] {
				planned = append(planned, &domain.Notification{
					ID:        uuid.New(),
					OwnerID:   loan.OwnerID,
					LoanID:    loan.ID,
					ClientID:  loan.ClientID,
					Kind:      domain.NotificationOverdue,
					Message:   OverdueMessage(loan),
					CreatedAt: now,
				})
			}
		} else if IsDueSoon(loan, now, thresholdDays) {
			if !seen[notificationKey{loanID: loan.ID, kind: domain.NotificationDueSoon}] {
				planned = append(planned, &domain.Notification{
					ID:        uuid.New(),
					OwnerID:   loan.OwnerID,
					LoanID:    loan.ID,
					ClientID:  loan.ClientID,
					Kind:      domain.NotificationDueSoon,
					Message:   DueSoonMessage(loan),
					CreatedAt: now,
				})
			}
		}
	}

	return planned
}

// OverdueMessage builds the reminder text for a loan past its due date.
func OverdueMessage(loan *domain.Loan) string {
	return fmt.Sprintf("Empréstimo vencido! Valor: R$ %s", loan.TotalAmount.StringFixed(2))
}

// DueSoonMessage builds the reminder text for a loan nearing its due date.
func DueSoonMessage(loan *domain.Loan) string {
	return fmt.Sprintf("Vencimento próximo! Data: %s", utils.FormatDate(loan.DueDate))
}

// PaidMessage builds the notification text emitted when a loan settles.
func PaidMessage(loan *domain.Loan) string {
	return fmt.Sprintf("Empréstimo quitado! Valor: R$ %s", loan.TotalAmount.StringFixed(2))
}
