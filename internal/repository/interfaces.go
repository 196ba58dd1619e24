package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/empresta/ledger-engine/internal/domain"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves one of the owner's clients
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Client, error)

	// List retrieves all clients of an owner
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Client, error)

	// Update updates a client's contact fields
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes a client and, by cascade, its loans
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves one of the owner's loans
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Loan, error)

	// List retrieves all loans of an owner
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error)

	// ListByClient retrieves an owner's loans for one client
	ListByClient(ctx context.Context, ownerID, clientID uuid.UUID) ([]*domain.Loan, error)

	// ListUnpaid retrieves every loan not yet marked paid, across owners.
	// Used by the reminder sweep.
	ListUnpaid(ctx context.Context) ([]*domain.Loan, error)

	// Update persists changed loan fields
	Update(ctx context.Context, loan *domain.Loan) error

	// Delete removes a loan and, by cascade, its children
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	// ListByLoan retrieves a loan's installments ordered by number
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.Installment, error)

	// CreateBatch inserts a generated installment set in one transaction
	CreateBatch(ctx context.Context, installments []*domain.Installment) error

	// GetByNumber retrieves a single installment of a loan
	GetByNumber(ctx context.Context, loanID uuid.UUID, number int) (*domain.Installment, error)

	// Update persists changed installment fields
	Update(ctx context.Context, installment *domain.Installment) error
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	// List retrieves an owner's notifications, newest first
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Notification, error)

	// ListAll retrieves every notification across owners, for sweep planning
	ListAll(ctx context.Context) ([]*domain.Notification, error)

	// InsertIfAbsent inserts a notification unless one with the same
	// (loan_id, kind) already exists. Returns true when a row was written.
	InsertIfAbsent(ctx context.Context, notification *domain.Notification) (bool, error)

	// MarkRead flags one of the owner's notifications as read
	MarkRead(ctx context.Context, ownerID, id uuid.UUID) error
}

// CollectionRepository defines the interface for collection message records
type CollectionRepository interface {
	// Create records a dispatched collection message
	Create(ctx context.Context, message *domain.CollectionMessage) error

	// List retrieves an owner's collection messages, newest first
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.CollectionMessage, error)
}

// SignatureRepository defines the interface for signature blobs
type SignatureRepository interface {
	// Get retrieves the signature captured for a loan
	Get(ctx context.Context, loanID uuid.UUID) (*domain.Signature, error)

	// Put inserts or replaces the signature for a loan
	Put(ctx context.Context, signature *domain.Signature) error
}
