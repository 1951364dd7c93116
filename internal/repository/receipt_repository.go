package repository

import (
	"context"

	"github.com/rahul-9386/emi-management-system/internal/domain"

	"github.com/jmoiron/sqlx"
)

type receiptRepository struct {
	db *sqlx.DB
}

func NewReceiptRepository(db *sqlx.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *domain.PaymentReceipt) error {
	query := `
		INSERT INTO payment_receipts (receipt_id, loan_account_no, payment_amount, payment_mode, payment_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		receipt.ReceiptID,
		receipt.LoanAccountNo,
		receipt.PaymentAmount,
		receipt.PaymentMode,
		receipt.PaymentDate,
	)

	return err
}

func (r *receiptRepository) GetByAccount(ctx context.Context, loanAccountNo string) ([]*domain.PaymentReceipt, error) {
	query := `
		SELECT receipt_id, loan_account_no, payment_amount, payment_mode, payment_date
		FROM payment_receipts
		WHERE loan_account_no = $1
		ORDER BY payment_date DESC
	`

	receipts := make([]*domain.PaymentReceipt, 0)
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &receipts, query, loanAccountNo); err != nil {
		return nil, err
	}

	return receipts, nil
}
