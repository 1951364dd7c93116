package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rahul-9386/emi-management-system/internal/config"
	"github.com/rahul-9386/emi-management-system/internal/domain"
	"github.com/rahul-9386/emi-management-system/internal/repository"
	customError "github.com/rahul-9386/emi-management-system/pkg/errors"
	"github.com/rahul-9386/emi-management-system/pkg/utils"
)

// EmiService holds the payment-allocation and EMI-calculation logic.
type EmiService struct {
	obligationRepo repository.ObligationRepository
	receiptRepo    repository.ReceiptRepository
	allocationRepo repository.AllocationRepository
	tx             repository.TxRunner
	redis          *redis.Client
	logger         *zap.Logger

	delayPolicy DelayPolicy
	penaltyRate decimal.Decimal
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewEmiService(
	obligationRepo repository.ObligationRepository,
	receiptRepo repository.ReceiptRepository,
	allocationRepo repository.AllocationRepository,
	tx repository.TxRunner,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *EmiService {
	return &EmiService{
		obligationRepo: obligationRepo,
		receiptRepo:    receiptRepo,
		allocationRepo: allocationRepo,
		tx:             tx,
		redis:          redisClient,
		logger:         logger,
		delayPolicy:    DelayPolicyFromConfig(cfg),
		penaltyRate:    cfg.GetDailyPenaltyRate(),
		cacheTTL:       cfg.Business.CacheTTL,
		now:            time.Now,
	}
}

// ValidateAccount reports whether the account has any obligation snapshot.
func (s *EmiService) ValidateAccount(ctx context.Context, loanAccountNo string) (bool, error) {
	exists, err := s.obligationRepo.ExistsByAccount(ctx, loanAccountNo)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	s.logger.Info("validated loan account",
		zap.String("loan_account_no", loanAccountNo),
		zap.Bool("valid", exists),
	)
	return exists, nil
}

// CalculateEmi computes the current dues for an account from its latest
// obligation snapshot: pending EMI plus a delay penalty of the daily rate
// multiplied by the days delayed reported by the delay policy.
func (s *EmiService) CalculateEmi(ctx context.Context, loanAccountNo string) (*domain.EmiDetails, error) {
	if details := s.cachedDues(ctx, loanAccountNo); details != nil {
		return details, nil
	}

	snapshot, err := s.obligationRepo.GetLatestByAccount(ctx, loanAccountNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapAccountNotFound(loanAccountNo)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	penaltyCharges := decimal.Zero
	if days := s.delayPolicy.DaysDelayed(snapshot); days > 0 {
		penaltyCharges = s.penaltyRate.Mul(decimal.NewFromInt(days))
	}

	details := &domain.EmiDetails{
		LoanAccountNo:    loanAccountNo,
		PendingEmiAmount: snapshot.PendingEmiAmount,
		PenaltyCharges:   penaltyCharges,
		TotalAmount:      snapshot.PendingEmiAmount.Add(penaltyCharges),
	}

	s.cacheDues(ctx, details)
	return details, nil
}

// ProcessPayment allocates a payment across outstanding dues in priority order
// (Penalty before EMI) and persists the receipt together with the allocation
// entries in one transaction. The receipt records the full payment amount; any
// part of it exceeding the dues is reported back as Overpayment.
func (s *EmiService) ProcessPayment(ctx context.Context, loanAccountNo string, paymentAmount decimal.Decimal, paymentMode string) (*domain.PaymentResult, error) {
	if !paymentAmount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount()
	}

	details, err := s.CalculateEmi(ctx, loanAccountNo)
	if err != nil {
		return nil, err
	}

	now := s.now()
	allocations, overpayment := allocate(loanAccountNo, paymentAmount, details, now)

	receipt := &domain.PaymentReceipt{
		ReceiptID:     uuid.New(),
		LoanAccountNo: loanAccountNo,
		PaymentAmount: paymentAmount,
		PaymentMode:   paymentMode,
		PaymentDate:   now,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}
		if len(allocations) == 0 {
			return nil
		}
		return s.allocationRepo.CreateBatch(ctx, allocations)
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateDues(ctx, loanAccountNo)

	s.logger.Info("payment processed",
		zap.String("loan_account_no", loanAccountNo),
		zap.String("receipt_id", receipt.ReceiptID.String()),
		zap.String("payment_amount", paymentAmount.String()),
		zap.String("payment_mode", paymentMode),
		zap.Int("allocations", len(allocations)),
		zap.String("overpayment", overpayment.String()),
	)

	return &domain.PaymentResult{
		Receipt:     receipt,
		Allocations: allocations,
		Overpayment: overpayment,
	}, nil
}

// allocate splits a payment across dues with strict priority: penalty first,
// up to penaltyCharges, then EMI up to pendingEmiAmount. Zero-amount entries
// are never produced. The second return value is the unallocated remainder.
func allocate(loanAccountNo string, paymentAmount decimal.Decimal, details *domain.EmiDetails, now time.Time) ([]*domain.AllocationEntry, decimal.Decimal) {
	remaining := paymentAmount
	allocations := make([]*domain.AllocationEntry, 0, 2)

	if details.PenaltyCharges.IsPositive() {
		penaltyAllocation := decimal.Min(remaining, details.PenaltyCharges)
		allocations = append(allocations, &domain.AllocationEntry{
			AllocationID:    uuid.New(),
			LoanAccountNo:   loanAccountNo,
			AllocatedTo:     domain.AllocationTargetPenalty,
			AllocatedAmount: penaltyAllocation,
			AllocationDate:  now,
		})
		remaining = remaining.Sub(penaltyAllocation)
	}

	if remaining.IsPositive() {
		emiAllocation := decimal.Min(remaining, details.PendingEmiAmount)
		if emiAllocation.IsPositive() {
			allocations = append(allocations, &domain.AllocationEntry{
				AllocationID:    uuid.New(),
				LoanAccountNo:   loanAccountNo,
				AllocatedTo:     domain.AllocationTargetEmi,
				AllocatedAmount: emiAllocation,
				AllocationDate:  now,
			})
		}
		remaining = remaining.Sub(emiAllocation)
	}

	return allocations, remaining
}

// GetAllocations returns all allocation entries for an account, most recent first.
func (s *EmiService) GetAllocations(ctx context.Context, loanAccountNo string) ([]*domain.AllocationEntry, error) {
	entries, err := s.allocationRepo.GetByAccount(ctx, loanAccountNo)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return entries, nil
}

// GetPaymentHistory returns all receipts for an account, most recent first.
func (s *EmiService) GetPaymentHistory(ctx context.Context, loanAccountNo string) ([]*domain.PaymentReceipt, error) {
	receipts, err := s.receiptRepo.GetByAccount(ctx, loanAccountNo)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return receipts, nil
}

// CreateObligation records a new obligation snapshot for an account. The
// snapshot it supersedes stays in place; only the latest one is consulted.
func (s *EmiService) CreateObligation(ctx context.Context, request *domain.CreateObligationRequest) (*domain.ObligationSnapshot, error) {
	if request.PendingEmiAmount.IsNegative() {
		return nil, customError.WrapInvalidObligation("Pending EMI amount must not be negative")
	}
	if request.PenaltyCharges.IsNegative() {
		return nil, customError.WrapInvalidObligation("Penalty charges must not be negative")
	}

	pending := utils.RoundMoney(request.PendingEmiAmount)
	penalty := utils.RoundMoney(request.PenaltyCharges)

	snapshot := &domain.ObligationSnapshot{
		ID:               uuid.New(),
		LoanAccountNo:    request.LoanAccountNo,
		PendingEmiAmount: pending,
		PenaltyCharges:   penalty,
		TotalAmount:      pending.Add(penalty),
		CreatedDate:      s.now(),
	}

	if err := s.obligationRepo.Create(ctx, snapshot); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateDues(ctx, snapshot.LoanAccountNo)

	s.logger.Info("obligation snapshot recorded",
		zap.String("loan_account_no", snapshot.LoanAccountNo),
		zap.String("total_amount", snapshot.TotalAmount.String()),
	)
	return snapshot, nil
}

// RefreshDuesCache recomputes the dues of every account that has an obligation
// snapshot and rewrites the cache. Run daily by the scheduler so cached
// penalties do not go stale across day boundaries.
func (s *EmiService) RefreshDuesCache(ctx context.Context) (int, error) {
	accounts, err := s.obligationRepo.ListAccounts(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	refreshed := 0
	for _, account := range accounts {
		s.invalidateDues(ctx, account)
		if _, err := s.CalculateEmi(ctx, account); err != nil {
			s.logger.Warn("dues refresh failed for account",
				zap.String("loan_account_no", account),
				zap.Error(err),
			)
			continue
		}
		refreshed++
	}

	return refreshed, nil
}

// Cache plumbing. The cache is an optimization, never authoritative: every
// failure below is logged and swallowed.

func duesCacheKey(loanAccountNo string) string {
	return fmt.Sprintf("emi:dues:%s", loanAccountNo)
}

func (s *EmiService) cachedDues(ctx context.Context, loanAccountNo string) *domain.EmiDetails {
	if s.redis == nil {
		return nil
	}

	payload, err := s.redis.Get(ctx, duesCacheKey(loanAccountNo)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dues cache read failed", zap.Error(customError.WrapCacheError(err)))
		}
		return nil
	}

	var details domain.EmiDetails
	if err := json.Unmarshal(payload, &details); err != nil {
		s.logger.Warn("dues cache payload malformed", zap.Error(err))
		return nil
	}
	return &details
}

func (s *EmiService) cacheDues(ctx context.Context, details *domain.EmiDetails) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, duesCacheKey(details.LoanAccountNo), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dues cache write failed", zap.Error(customError.WrapCacheError(err)))
	}
}

func (s *EmiService) invalidateDues(ctx context.Context, loanAccountNo string) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, duesCacheKey(loanAccountNo)).Err(); err != nil {
		s.logger.Warn("dues cache invalidation failed", zap.Error(customError.WrapCacheError(err)))
	}
}
