package repository

import (
	"context"

	"github.com/rahul-9386/emi-management-system/internal/domain"

	"github.com/jmoiron/sqlx"
)

type allocationRepository struct {
	db *sqlx.DB
}

func NewAllocationRepository(db *sqlx.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) CreateBatch(ctx context.Context, entries []*domain.AllocationEntry) error {
	query := `
		INSERT INTO allocation_entries (allocation_id, loan_account_no, allocated_to, allocated_amount, allocation_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, entry := range entries {
		_, err := ext(ctx, r.db).ExecContext(ctx, query,
			entry.AllocationID,
			entry.LoanAccountNo,
			entry.AllocatedTo,
			entry.AllocatedAmount,
			entry.AllocationDate,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *allocationRepository) GetByAccount(ctx context.Context, loanAccountNo string) ([]*domain.AllocationEntry, error) {
	query := `
		SELECT allocation_id, loan_account_no, allocated_to, allocated_amount, allocation_date
		FROM allocation_entries
		WHERE loan_account_no = $1
		ORDER BY allocation_date DESC, allocation_id
	`

	entries := make([]*domain.AllocationEntry, 0)
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &entries, query, loanAccountNo); err != nil {
		return nil, err
	}

	return entries, nil
}
