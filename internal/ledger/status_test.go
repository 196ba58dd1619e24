package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/empresta/ledger-engine/internal/domain"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   string
		dueDate  time.Time
		expected string
	}{
		{
			name:     "active before due date",
			status:   domain.LoanStatusActive,
			dueDate:  now.AddDate(0, 0, 5),
			expected: domain.DisplayStatusActive,
		},
		{
			name:     "active on due date is not overdue",
			status:   domain.LoanStatusActive,
			dueDate:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			expected: domain.DisplayStatusActive,
		},
		{
			name:     "active past due date",
			status:   domain.LoanStatusActive,
			dueDate:  now.AddDate(0, 0, -1),
			expected: domain.DisplayStatusOverdue,
		},
		{
			name:     "paid wins over past due date",
			status:   domain.LoanStatusPaid,
			dueDate:  now.AddDate(0, 0, -30),
			expected: domain.DisplayStatusPaid,
		},
		{
			name:     "legacy stored overdue derives from date",
			status:   "vencido",
			dueDate:  now.AddDate(0, 0, -3),
			expected: domain.DisplayStatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := &domain.Loan{Status: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.expected, Classify(loan, now))
		})
	}
}

func TestClassify_PureAndIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	loan := &domain.Loan{
		Status:      domain.LoanStatusActive,
		DueDate:     time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(715),
		AmountPaid:  decimal.NewFromInt(100),
	}
	before := *loan

	first := Classify(loan, now)
	second := Classify(loan, now)

	assert.Equal(t, domain.DisplayStatusOverdue, first)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *loan, "classification must not mutate the loan")
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   string
		dueDate  time.Time
		expected bool
	}{
		{
			name:     "due in two days",
			status:   domain.LoanStatusActive,
			dueDate:  now.AddDate(0, 0, 2),
			expected: true,
		},
		{
			name:     "due today",
			status:   domain.LoanStatusActive,
			dueDate:  now,
			expected: true,
		},
		{
			name:     "due exactly at threshold",
			status:   domain.LoanStatusActive,
			dueDate:  now.AddDate(0, 0, 3),
			expected: true,
		},
		{
			name:     "due past threshold",
			status:   domain.LoanStatusActive,
			dueDate:  now.AddDate(0, 0, 4),
			expected: false,
		},
		{
			name:     "already overdue is not due soon",
			status:   domain.LoanStatusActive,
			dueDate:  now.AddDate(0, 0, -1),
			expected: false,
		},
		{
			name:     "paid loan never due soon",
			status:   domain.LoanStatusPaid,
			dueDate:  now.AddDate(0, 0, 1),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := &domain.Loan{Status: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.expected, IsDueSoon(loan, now, 3))
		})
	}
}
