package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empresta/ledger-engine/internal/domain"
)

func reminderLoan(status string, dueDate time.Time) *domain.Loan {
	return &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		ClientID:    uuid.New(),
		TotalAmount: decimal.NewFromFloat(715),
		DueDate:     dueDate,
		Status:      status,
	}
}

func TestPlanReminders_DueSoon(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	loan := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, 2))

	planned := PlanReminders([]*domain.Loan{loan}, nil, now, 3)

	require.Len(t, planned, 1)
	assert.Equal(t, domain.NotificationDueSoon, planned[0].Kind)
	assert.Equal(t, loan.ID, planned[0].LoanID)
	assert.Equal(t, loan.ClientID, planned[0].ClientID)
	assert.Equal(t, loan.OwnerID, planned[0].OwnerID)
	assert.Contains(t, planned[0].Message, "Vencimento próximo")
	assert.False(t, planned[0].Read)
}

func TestPlanReminders_DueSoonDedup(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	loan := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, 2))

	first := PlanReminders([]*domain.Loan{loan}, nil, now, 3)
	require.Len(t, first, 1)

	// Second sweep over the same state plans nothing new.
	second := PlanReminders([]*domain.Loan{loan}, first, now, 3)
	assert.Empty(t, second)
}

func TestPlanReminders_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	loan := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, -1))

	planned := PlanReminders([]*domain.Loan{loan}, nil, now, 3)

	require.Len(t, planned, 1)
	assert.Equal(t, domain.NotificationOverdue, planned[0].Kind)
	assert.Contains(t, planned[0].Message, "Empréstimo vencido")
}

func TestPlanReminders_SequentialDueSoonThenOverdue(t *testing.T) {
	dueDate := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	loan := reminderLoan(domain.LoanStatusActive, dueDate)

	// First sweep inside the window plans due-soon.
	inWindow := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	first := PlanReminders([]*domain.Loan{loan}, nil, inWindow, 3)
	require.Len(t, first, 1)
	assert.Equal(t, domain.NotificationDueSoon, first[0].Kind)

	// A later sweep past the due date independently plans overdue.
	pastDue := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)
	second := PlanReminders([]*domain.Loan{loan}, first, pastDue, 3)
	require.Len(t, second, 1)
	assert.Equal(t, domain.NotificationOverdue, second[0].Kind)

	// And a third sweep plans nothing further.
	third := PlanReminders([]*domain.Loan{loan}, append(first, second...), pastDue, 3)
	assert.Empty(t, third)
}

func TestPlanReminders_SkipsPaidLoans(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	loan := reminderLoan(domain.LoanStatusPaid, now.AddDate(0, 0, -5))

	planned := PlanReminders([]*domain.Loan{loan}, nil, now, 3)

	assert.Empty(t, planned)
}

func TestPlanReminders_OutsideWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	loan := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, 10))

	planned := PlanReminders([]*domain.Loan{loan}, nil, now, 3)

	assert.Empty(t, planned)
}

func TestPlanReminders_MixedPortfolio(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	dueSoon := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, 1))
	overdue := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, -2))
	quiet := reminderLoan(domain.LoanStatusActive, now.AddDate(0, 0, 30))
	settled := reminderLoan(domain.LoanStatusPaid, now.AddDate(0, 0, -2))

	planned := PlanReminders([]*domain.Loan{dueSoon, overdue, quiet, settled}, nil, now, 3)

	require.Len(t, planned, 2)
	kinds := map[uuid.UUID]string{}
	for _, n := range planned {
		kinds[n.LoanID] = n.Kind
	}
	assert.Equal(t, domain.NotificationDueSoon, kinds[dueSoon.ID])
	assert.Equal(t, domain.NotificationOverdue, kinds[overdue.ID])
}
