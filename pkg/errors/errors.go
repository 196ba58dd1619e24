package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrClientNotFound          = errors.New("client not found")
	ErrLoanNotFound            = errors.New("loan not found")
	ErrInstallmentNotFound     = errors.New("installment not found")
	ErrSignatureNotFound       = errors.New("signature not found")
	ErrLoanAlreadyPaid         = errors.New("loan is already paid")
	ErrInvalidLoanAmount       = errors.New("invalid loan amount")
	ErrInvalidPaymentAmount    = errors.New("invalid payment amount")
	ErrNotInstallmentLoan      = errors.New("loan is not in installment mode")
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	ErrValidationFailed        = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeClientNotFound      = "CLIENT_NOT_FOUND"
	ErrCodeLoanNotFound        = "LOAN_NOT_FOUND"
	ErrCodeInstallmentNotFound = "INSTALLMENT_NOT_FOUND"
	ErrCodeSignatureNotFound   = "SIGNATURE_NOT_FOUND"
	ErrCodeLoanAlreadyPaid     = "LOAN_ALREADY_PAID"
	ErrCodeInvalidLoanAmount   = "INVALID_LOAN_AMOUNT"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapClientNotFound(clientID string) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %s not found", clientID),
		ErrClientNotFound,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapInstallmentNotFound(loanID string, number int) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentNotFound,
		fmt.Sprintf("Installment %d of loan %s not found", number, loanID),
		ErrInstallmentNotFound,
	)
}

func WrapSignatureNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSignatureNotFound,
		fmt.Sprintf("No signature captured for loan %s", loanID),
		ErrSignatureNotFound,
	)
}

func WrapLoanAlreadyPaid(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyPaid,
		fmt.Sprintf("Loan with ID %s is already paid", loanID),
		ErrLoanAlreadyPaid,
	)
}

func WrapInvalidLoanAmount(msg string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanAmount,
		msg,
		ErrInvalidLoanAmount,
	)
}

func WrapValidationFailed(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidationFailed,
		"request validation failed",
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
