package repository

import (
	"context"

	"github.com/rahul-9386/emi-management-system/internal/domain"
)

// ObligationRepository defines the interface for obligation snapshot operations
type ObligationRepository interface {
	// Create records a new obligation snapshot. Snapshots are append-only.
	Create(ctx context.Context, snapshot *domain.ObligationSnapshot) error

	// GetLatestByAccount retrieves the most recent snapshot for an account,
	// selected by created_date. Returns sql.ErrNoRows when none exists.
	GetLatestByAccount(ctx context.Context, loanAccountNo string) (*domain.ObligationSnapshot, error)

	// ExistsByAccount reports whether any snapshot exists for the account
	ExistsByAccount(ctx context.Context, loanAccountNo string) (bool, error)

	// ListAccounts returns the distinct accounts that have at least one snapshot
	ListAccounts(ctx context.Context) ([]string, error)
}

// ReceiptRepository defines the interface for payment receipt operations
type ReceiptRepository interface {
	// Create persists a payment receipt
	Create(ctx context.Context, receipt *domain.PaymentReceipt) error

	// GetByAccount retrieves all receipts for an account, most recent first
	GetByAccount(ctx context.Context, loanAccountNo string) ([]*domain.PaymentReceipt, error)
}

// AllocationRepository defines the interface for allocation entry operations
type AllocationRepository interface {
	// CreateBatch persists all allocation entries for one payment
	CreateBatch(ctx context.Context, entries []*domain.AllocationEntry) error

	// GetByAccount retrieves all allocation entries for an account, most recent first
	GetByAccount(ctx context.Context, loanAccountNo string) ([]*domain.AllocationEntry, error)
}

// TxRunner runs a function inside a single database transaction. Repository
// methods invoked with the context it passes to fn join that transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
