package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/internal/ledger"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/utils"
)

// CreateLoan validates and records a new loan. The total to repay is fixed
// at creation time as principal plus the flat interest fee. Nothing is
// written when validation fails.
func (s *LedgerService) CreateLoan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if request.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidLoanAmount("principal must be greater than zero")
	}
	if request.Interest.IsNegative() {
		return nil, customError.WrapInvalidLoanAmount("interest must not be negative")
	}

	clientID, err := uuid.Parse(request.ClientID)
	if err != nil {
		return nil, customError.WrapValidationFailed(err)
	}

	startDate, err := utils.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.WrapValidationFailed(err)
	}
	dueDate, err := utils.ParseDate(request.DueDate)
	if err != nil {
		return nil, customError.WrapValidationFailed(err)
	}
	if utils.IsBeforeDay(dueDate, startDate) {
		return nil, customError.WrapValidationFailed(errors.New("due date must not precede start date"))
	}

	if request.PaymentMode == domain.PaymentModeInstallment && request.InstallmentCount < 1 {
		return nil, customError.ErrInvalidInstallmentCount
	}

	// The loan must belong to one of the owner's clients.
	if _, err := s.GetClient(ctx, ownerID, clientID); err != nil {
		return nil, err
	}

	principal := utils.RoundMoney(request.Principal)
	interest := utils.RoundMoney(request.Interest)
	now := s.now()

	loan := &domain.Loan{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		ClientID:         clientID,
		Principal:        principal,
		Interest:         interest,
		TotalAmount:      principal.Add(interest),
		AmountPaid:       decimal.Zero,
		StartDate:        startDate,
		DueDate:          dueDate,
		PaymentMode:      request.PaymentMode,
		InstallmentCount: request.InstallmentCount,
		Status:           domain.LoanStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, ownerID)
	return loan, nil
}

func (s *LedgerService) GetLoan(ctx context.Context, ownerID, loanID uuid.UUID) (*domain.LoanResponse, error) {
	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}

	return &domain.LoanResponse{
		Loan:          loan,
		DisplayStatus: ledger.Classify(loan, s.now()),
	}, nil
}

func (s *LedgerService) getLoan(ctx context.Context, ownerID, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.loans.GetByID(ctx, ownerID, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

func (s *LedgerService) ListLoans(ctx context.Context, ownerID uuid.UUID) ([]*domain.LoanResponse, error) {
	loans, err := s.loans.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	responses := make([]*domain.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, &domain.LoanResponse{
			Loan:          loan,
			DisplayStatus: ledger.Classify(loan, now),
		})
	}

	return responses, nil
}

// UpdateLoan edits the money fields of an unpaid loan and recomputes the
// stored total so the principal+interest invariant holds.
func (s *LedgerService) UpdateLoan(ctx context.Context, ownerID, loanID uuid.UUID, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	if request.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidLoanAmount("principal must be greater than zero")
	}
	if request.Interest.IsNegative() {
		return nil, customError.WrapInvalidLoanAmount("interest must not be negative")
	}

	dueDate, err := utils.ParseDate(request.DueDate)
	if err != nil {
		return nil, customError.WrapValidationFailed(err)
	}

	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanStatusPaid {
		return nil, customError.WrapLoanAlreadyPaid(loanID.String())
	}

	loan.Principal = utils.RoundMoney(request.Principal)
	loan.Interest = utils.RoundMoney(request.Interest)
	loan.TotalAmount = loan.Principal.Add(loan.Interest)
	loan.DueDate = dueDate
	loan.UpdatedAt = s.now()

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, ownerID)
	return loan, nil
}

// RegisterPayment applies a partial payment to a loan. The running total
// never decreases and never exceeds the amount owed; reaching the full
// total settles the loan.
func (s *LedgerService) RegisterPayment(ctx context.Context, ownerID, loanID uuid.UUID, amount decimal.Decimal) (*domain.Loan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidLoanAmount("payment amount must be greater than zero")
	}

	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanStatusPaid {
		return nil, customError.WrapLoanAlreadyPaid(loanID.String())
	}

	paid := utils.RoundMoney(loan.AmountPaid.Add(amount))
	if paid.GreaterThan(loan.TotalAmount) {
		paid = loan.TotalAmount
	}
	loan.AmountPaid = paid
	loan.UpdatedAt = s.now()

	if loan.AmountPaid.Equal(loan.TotalAmount) {
		return s.settle(ctx, loan)
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, ownerID)
	return loan, nil
}

// MarkLoanPaid is the explicit terminal transition: the paid amount snaps
// to the full total and a settle notification is emitted once.
func (s *LedgerService) MarkLoanPaid(ctx context.Context, ownerID, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanStatusPaid {
		return nil, customError.WrapLoanAlreadyPaid(loanID.String())
	}

	loan.AmountPaid = loan.TotalAmount
	loan.UpdatedAt = s.now()
	return s.settle(ctx, loan)
}

func (s *LedgerService) settle(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	loan.Status = domain.LoanStatusPaid

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// At most one settle notification per loan; re-settles are no-ops.
	notification := &domain.Notification{
		ID:        uuid.New(),
		OwnerID:   loan.OwnerID,
		LoanID:    loan.ID,
		ClientID:  loan.ClientID,
		Kind:      domain.NotificationPaid,
		Message:   ledger.PaidMessage(loan),
		CreatedAt: s.now(),
	}
	if _, err := s.notifications.InsertIfAbsent(ctx, notification); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, loan.OwnerID)
	return loan, nil
}

func (s *LedgerService) DeleteLoan(ctx context.Context, ownerID, loanID uuid.UUID) error {
	if _, err := s.getLoan(ctx, ownerID, loanID); err != nil {
		return err
	}

	if err := s.loans.Delete(ctx, ownerID, loanID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, ownerID)
	return nil
}
