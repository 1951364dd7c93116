package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rahul-9386/emi-management-system/internal/domain"
)

type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) Create(ctx context.Context, snapshot *domain.ObligationSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockObligationRepository) GetLatestByAccount(ctx context.Context, loanAccountNo string) (*domain.ObligationSnapshot, error) {
	args := m.Called(ctx, loanAccountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObligationSnapshot), args.Error(1)
}

func (m *MockObligationRepository) ExistsByAccount(ctx context.Context, loanAccountNo string) (bool, error) {
	args := m.Called(ctx, loanAccountNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockObligationRepository) ListAccounts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *domain.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByAccount(ctx context.Context, loanAccountNo string) ([]*domain.PaymentReceipt, error) {
	args := m.Called(ctx, loanAccountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentReceipt), args.Error(1)
}

type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) CreateBatch(ctx context.Context, entries []*domain.AllocationEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAllocationRepository) GetByAccount(ctx context.Context, loanAccountNo string) ([]*domain.AllocationEntry, error) {
	args := m.Called(ctx, loanAccountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AllocationEntry), args.Error(1)
}

// stubTxRunner runs the callback without a real transaction. When err is set
// it fails up front, as a failed Begin would.
type stubTxRunner struct {
	err error
}

func (s stubTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}
