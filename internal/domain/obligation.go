package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObligationSnapshot is a point-in-time record of what a loan account owes.
// Snapshots are append-only; the latest one by created_date is authoritative.
type ObligationSnapshot struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	LoanAccountNo    string          `json:"loan_account_no" db:"loan_account_no"`
	PendingEmiAmount decimal.Decimal `json:"pending_emi_amount" db:"pending_emi_amount"`
	PenaltyCharges   decimal.Decimal `json:"penalty_charges" db:"penalty_charges"`
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
	CreatedDate      time.Time       `json:"created_date" db:"created_date"`
}

// EmiDetails is the computed view of an account's current dues.
type EmiDetails struct {
	LoanAccountNo    string          `json:"loan_account_no"`
	PendingEmiAmount decimal.Decimal `json:"pending_emi_amount"`
	PenaltyCharges   decimal.Decimal `json:"penalty_charges"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// DTOs for requests and responses

type CreateObligationRequest struct {
	LoanAccountNo    string          `json:"loan_account_no" validate:"required"`
	PendingEmiAmount decimal.Decimal `json:"pending_emi_amount"`
	PenaltyCharges   decimal.Decimal `json:"penalty_charges"`
}

type ValidateAccountResponse struct {
	LoanAccountNo string `json:"loan_account_no"`
	Valid         bool   `json:"valid"`
}
