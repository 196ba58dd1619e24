package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/tests/mocks"
)

type fixtures struct {
	clients       *mocks.MockClientRepository
	loans         *mocks.MockLoanRepository
	installments  *mocks.MockInstallmentRepository
	notifications *mocks.MockNotificationRepository
	collections   *mocks.MockCollectionRepository
	signatures    *mocks.MockSignatureRepository
	service       *LedgerService
}

func newFixtures(now time.Time) *fixtures {
	f := &fixtures{
		clients:       &mocks.MockClientRepository{},
		loans:         &mocks.MockLoanRepository{},
		installments:  &mocks.MockInstallmentRepository{},
		notifications: &mocks.MockNotificationRepository{},
		collections:   &mocks.MockCollectionRepository{},
		signatures:    &mocks.MockSignatureRepository{},
	}
	f.service = &LedgerService{
		clients:       f.clients,
		loans:         f.loans,
		installments:  f.installments,
		notifications: f.notifications,
		collections:   f.collections,
		signatures:    f.signatures,
		now:           func() time.Time { return now },
	}
	return f
}

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestCreateLoan_ComputesTotal(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	clientID := uuid.New()

	f.clients.On("GetByID", mock.Anything, ownerID, clientID).
		Return(&domain.Client{ID: clientID, OwnerID: ownerID, Name: "João"}, nil)
	f.loans.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
		return loan.TotalAmount.Equal(decimal.NewFromInt(715)) &&
			loan.AmountPaid.IsZero() &&
			loan.Status == domain.LoanStatusActive
	})).Return(nil)

	loan, err := f.service.CreateLoan(context.Background(), ownerID, &domain.CreateLoanRequest{
		ClientID:    clientID.String(),
		Principal:   decimal.NewFromFloat(550),
		Interest:    decimal.NewFromFloat(165),
		StartDate:   "2024-06-01",
		DueDate:     "2024-07-01",
		PaymentMode: domain.PaymentModeLumpSum,
	})

	require.NoError(t, err)
	assert.Equal(t, "715", loan.TotalAmount.String())
	assert.Equal(t, ownerID, loan.OwnerID)
	f.loans.AssertExpectations(t)
}

func TestCreateLoan_RejectsWithoutWriting(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()

	tests := []struct {
		name    string
		request *domain.CreateLoanRequest
	}{
		{
			name: "zero principal",
			request: &domain.CreateLoanRequest{
				ClientID:    uuid.New().String(),
				Principal:   decimal.Zero,
				Interest:    decimal.NewFromInt(10),
				StartDate:   "2024-06-01",
				DueDate:     "2024-07-01",
				PaymentMode: domain.PaymentModeLumpSum,
			},
		},
		{
			name: "negative interest",
			request: &domain.CreateLoanRequest{
				ClientID:    uuid.New().String(),
				Principal:   decimal.NewFromInt(100),
				Interest:    decimal.NewFromInt(-1),
				StartDate:   "2024-06-01",
				DueDate:     "2024-07-01",
				PaymentMode: domain.PaymentModeLumpSum,
			},
		},
		{
			name: "due date precedes start date",
			request: &domain.CreateLoanRequest{
				ClientID:    uuid.New().String(),
				Principal:   decimal.NewFromInt(100),
				Interest:    decimal.NewFromInt(10),
				StartDate:   "2024-07-01",
				DueDate:     "2024-06-01",
				PaymentMode: domain.PaymentModeLumpSum,
			},
		},
		{
			name: "installment mode without count",
			request: &domain.CreateLoanRequest{
				ClientID:    uuid.New().String(),
				Principal:   decimal.NewFromInt(100),
				Interest:    decimal.NewFromInt(10),
				StartDate:   "2024-06-01",
				DueDate:     "2024-07-01",
				PaymentMode: domain.PaymentModeInstallment,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateLoan(context.Background(), ownerID, tt.request)
			assert.Error(t, err)
		})
	}

	f.loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetInstallments_LazyMaterialization(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		ClientID:         uuid.New(),
		TotalAmount:      decimal.NewFromInt(900),
		StartDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PaymentMode:      domain.PaymentModeInstallment,
		InstallmentCount: 3,
		Status:           domain.LoanStatusActive,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.installments.On("ListByLoan", mock.Anything, loan.ID).Return([]*domain.Installment{}, nil)
	f.installments.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []*domain.Installment) bool {
		return len(batch) == 3
	})).Return(nil).Once()

	schedule, err := f.service.GetInstallments(context.Background(), ownerID, loan.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 3)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
	assert.Equal(t, "300", schedule[0].Amount.String())

	f.installments.AssertExpectations(t)
}

func TestGetInstallments_NeverRegenerates(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		TotalAmount:      decimal.NewFromInt(900),
		PaymentMode:      domain.PaymentModeInstallment,
		InstallmentCount: 3,
		Status:           domain.LoanStatusActive,
	}
	existing := []*domain.Installment{
		{ID: uuid.New(), LoanID: loan.ID, Number: 1, Amount: decimal.NewFromInt(300)},
		{ID: uuid.New(), LoanID: loan.ID, Number: 2, Amount: decimal.NewFromInt(300)},
		{ID: uuid.New(), LoanID: loan.ID, Number: 3, Amount: decimal.NewFromInt(300)},
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.installments.On("ListByLoan", mock.Anything, loan.ID).Return(existing, nil)

	schedule, err := f.service.GetInstallments(context.Background(), ownerID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, schedule)

	f.installments.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestRunReminderSweep_InsertsOnce(t *testing.T) {
	f := newFixtures(testNow)
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		ClientID:    uuid.New(),
		TotalAmount: decimal.NewFromInt(715),
		DueDate:     testNow.AddDate(0, 0, 2),
		Status:      domain.LoanStatusActive,
	}

	f.loans.On("ListUnpaid", mock.Anything).Return([]*domain.Loan{loan}, nil)
	f.notifications.On("ListAll", mock.Anything).Return([]*domain.Notification{}, nil).Once()
	f.notifications.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Kind == domain.NotificationDueSoon && n.LoanID == loan.ID
	})).Return(true, nil).Once()

	created, err := f.service.RunReminderSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// An immediate re-run over unchanged state creates nothing.
	existing := []*domain.Notification{
		{ID: uuid.New(), LoanID: loan.ID, Kind: domain.NotificationDueSoon},
	}
	f.notifications.On("ListAll", mock.Anything).Return(existing, nil).Once()

	created, err = f.service.RunReminderSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	f.notifications.AssertExpectations(t)
}

func TestMarkLoanPaid_SettlesAndNotifies(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ClientID:    uuid.New(),
		TotalAmount: decimal.NewFromInt(715),
		Interest:    decimal.NewFromInt(165),
		AmountPaid:  decimal.NewFromInt(100),
		DueDate:     testNow.AddDate(0, 0, 10),
		Status:      domain.LoanStatusActive,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.loans.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Loan) bool {
		return updated.Status == domain.LoanStatusPaid &&
			updated.AmountPaid.Equal(updated.TotalAmount)
	})).Return(nil)
	f.notifications.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Kind == domain.NotificationPaid && n.LoanID == loan.ID
	})).Return(true, nil)

	settled, err := f.service.MarkLoanPaid(context.Background(), ownerID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusPaid, settled.Status)
	assert.True(t, settled.AmountPaid.Equal(decimal.NewFromInt(715)))

	f.loans.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}

func TestMarkLoanPaid_AlreadyPaid(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		TotalAmount: decimal.NewFromInt(715),
		AmountPaid:  decimal.NewFromInt(715),
		Status:      domain.LoanStatusPaid,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)

	_, err := f.service.MarkLoanPaid(context.Background(), ownerID, loan.ID)
	assert.ErrorIs(t, err, customError.ErrLoanAlreadyPaid)

	f.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRegisterPayment_ClampsAndSettles(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ClientID:    uuid.New(),
		TotalAmount: decimal.NewFromInt(715),
		AmountPaid:  decimal.NewFromInt(700),
		DueDate:     testNow.AddDate(0, 0, 10),
		Status:      domain.LoanStatusActive,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.loans.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	// Overpaying by 85 clamps to the total and settles the loan.
	updated, err := f.service.RegisterPayment(context.Background(), ownerID, loan.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(715)))
	assert.Equal(t, domain.LoanStatusPaid, updated.Status)
}

func TestUpdateLoan_RecomputesTotal(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Principal:   decimal.NewFromInt(550),
		Interest:    decimal.NewFromInt(165),
		TotalAmount: decimal.NewFromInt(715),
		DueDate:     testNow.AddDate(0, 0, 10),
		Status:      domain.LoanStatusActive,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.loans.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Loan) bool {
		return updated.TotalAmount.Equal(decimal.NewFromInt(660))
	})).Return(nil)

	updated, err := f.service.UpdateLoan(context.Background(), ownerID, loan.ID, &domain.UpdateLoanRequest{
		Principal: decimal.NewFromInt(600),
		Interest:  decimal.NewFromInt(60),
		DueDate:   "2024-08-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "660", updated.TotalAmount.String())
	f.loans.AssertExpectations(t)
}

func TestPayInstallment_RollsIntoLoan(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ClientID:    uuid.New(),
		TotalAmount: decimal.NewFromInt(900),
		AmountPaid:  decimal.NewFromInt(300),
		DueDate:     testNow.AddDate(0, 1, 0),
		PaymentMode: domain.PaymentModeInstallment,
		Status:      domain.LoanStatusActive,
	}
	installment := &domain.Installment{
		ID:     uuid.New(),
		LoanID: loan.ID,
		Number: 2,
		Amount: decimal.NewFromInt(300),
		Status: domain.InstallmentStatusPending,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.installments.On("GetByNumber", mock.Anything, loan.ID, 2).Return(installment, nil)
	f.installments.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Installment) bool {
		return updated.Status == domain.InstallmentStatusPaid && updated.PaymentDate != nil
	})).Return(nil)
	f.loans.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Loan) bool {
		return updated.AmountPaid.Equal(decimal.NewFromInt(600))
	})).Return(nil)

	paid, err := f.service.PayInstallment(context.Background(), ownerID, loan.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentStatusPaid, paid.Status)

	f.installments.AssertExpectations(t)
	f.loans.AssertExpectations(t)
}

func TestPayInstallment_AlreadyPaidIsNoOp(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	loan := &domain.Loan{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Status:  domain.LoanStatusActive,
	}
	paidAt := testNow.AddDate(0, 0, -3)
	installment := &domain.Installment{
		ID:          uuid.New(),
		LoanID:      loan.ID,
		Number:      1,
		Amount:      decimal.NewFromInt(300),
		Status:      domain.InstallmentStatusPaid,
		PaymentDate: &paidAt,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.installments.On("GetByNumber", mock.Anything, loan.ID, 1).Return(installment, nil)

	result, err := f.service.PayInstallment(context.Background(), ownerID, loan.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, installment, result)

	f.installments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateCollectionMessage_DefaultText(t *testing.T) {
	f := newFixtures(testNow)
	ownerID := uuid.New()
	client := &domain.Client{ID: uuid.New(), OwnerID: ownerID, Name: "Maria"}
	loan := &domain.Loan{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ClientID:    client.ID,
		TotalAmount: decimal.NewFromInt(715),
		AmountPaid:  decimal.NewFromInt(215),
		DueDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.LoanStatusActive,
	}

	f.loans.On("GetByID", mock.Anything, ownerID, loan.ID).Return(loan, nil)
	f.clients.On("GetByID", mock.Anything, ownerID, client.ID).Return(client, nil)
	f.collections.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.CollectionMessage) bool {
		return m.Sent && m.SentAt != nil
	})).Return(nil)

	message, err := f.service.CreateCollectionMessage(context.Background(), ownerID, loan.ID, "")
	require.NoError(t, err)
	assert.Contains(t, message.Message, "Maria")
	assert.Contains(t, message.Message, "500.00")
	assert.Contains(t, message.Message, "2024-07-01")

	f.collections.AssertExpectations(t)
}
