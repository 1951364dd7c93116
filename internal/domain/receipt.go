package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentReceipt is the durable record of a single payment, independent of how
// the amount was allocated. Never mutated after creation.
type PaymentReceipt struct {
	ReceiptID     uuid.UUID       `json:"receipt_id" db:"receipt_id"`
	LoanAccountNo string          `json:"loan_account_no" db:"loan_account_no"`
	PaymentAmount decimal.Decimal `json:"payment_amount" db:"payment_amount"`
	PaymentMode   string          `json:"payment_mode" db:"payment_mode"`
	PaymentDate   time.Time       `json:"payment_date" db:"payment_date"`
}

type ProcessPaymentRequest struct {
	LoanAccountNo string `json:"loan_account_no" validate:"required"`
	// Amount bounds are enforced by the service so the error message stays
	// consistent across callers.
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentMode   string          `json:"payment_mode" validate:"required"`
}

// PaymentResult is what a processed payment reports back to the caller. The
// receipt records the full payment amount; Overpayment carries whatever part of
// it exceeded penalty + pending EMI and was therefore not allocated.
type PaymentResult struct {
	Receipt     *PaymentReceipt    `json:"receipt"`
	Allocations []*AllocationEntry `json:"allocations"`
	Overpayment decimal.Decimal    `json:"overpayment"`
}

type PaymentHistoryResponse struct {
	LoanAccountNo string            `json:"loan_account_no"`
	Payments      []*PaymentReceipt `json:"payments"`
	Count         int               `json:"count"`
}
