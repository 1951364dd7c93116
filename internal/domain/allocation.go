package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation targets, in priority order. Penalty is always satisfied before EMI.
const (
	AllocationTargetPenalty = "Penalty"
	AllocationTargetEmi     = "EMI"
)

// AllocationEntry assigns a portion of one payment to a single obligation
// category. Zero-amount entries are never recorded.
type AllocationEntry struct {
	AllocationID    uuid.UUID       `json:"allocation_id" db:"allocation_id"`
	LoanAccountNo   string          `json:"loan_account_no" db:"loan_account_no"`
	AllocatedTo     string          `json:"allocated_to" db:"allocated_to"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount" db:"allocated_amount"`
	AllocationDate  time.Time       `json:"allocation_date" db:"allocation_date"`
}

type AllocationsResponse struct {
	LoanAccountNo string             `json:"loan_account_no"`
	Allocations   []*AllocationEntry `json:"allocations"`
	Count         int                `json:"count"`
}
