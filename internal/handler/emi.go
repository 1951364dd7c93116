package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rahul-9386/emi-management-system/internal/domain"
	customError "github.com/rahul-9386/emi-management-system/pkg/errors"
	"github.com/rahul-9386/emi-management-system/pkg/response"
)

// EmiService is the core contract the HTTP layer depends on.
type EmiService interface {
	ValidateAccount(ctx context.Context, loanAccountNo string) (bool, error)
	CalculateEmi(ctx context.Context, loanAccountNo string) (*domain.EmiDetails, error)
	ProcessPayment(ctx context.Context, loanAccountNo string, paymentAmount decimal.Decimal, paymentMode string) (*domain.PaymentResult, error)
	GetAllocations(ctx context.Context, loanAccountNo string) ([]*domain.AllocationEntry, error)
	GetPaymentHistory(ctx context.Context, loanAccountNo string) ([]*domain.PaymentReceipt, error)
	CreateObligation(ctx context.Context, request *domain.CreateObligationRequest) (*domain.ObligationSnapshot, error)
}

type EmiHandler struct {
	service   EmiService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewEmiHandler(service EmiService, logger *zap.Logger) *EmiHandler {
	return &EmiHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// ValidateAccount handles GET /api/v1/emi/validate/{loanAccountNo}
func (h *EmiHandler) ValidateAccount(w http.ResponseWriter, r *http.Request) {
	loanAccountNo := mux.Vars(r)["loanAccountNo"]

	valid, err := h.service.ValidateAccount(r.Context(), loanAccountNo)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result := domain.ValidateAccountResponse{
		LoanAccountNo: loanAccountNo,
		Valid:         valid,
	}

	if !valid {
		response.JSON(w, http.StatusNotFound, result)
		return
	}
	response.Success(w, result)
}

// CalculateEmi handles GET /api/v1/emi/calculate/{loanAccountNo}
func (h *EmiHandler) CalculateEmi(w http.ResponseWriter, r *http.Request) {
	loanAccountNo := mux.Vars(r)["loanAccountNo"]

	details, err := h.service.CalculateEmi(r.Context(), loanAccountNo)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, details)
}

// ProcessPayment handles POST /api/v1/emi/payment
func (h *EmiHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Loan account number and payment mode are required", err)
		return
	}

	result, err := h.service.ProcessPayment(r.Context(), request.LoanAccountNo, request.PaymentAmount, request.PaymentMode)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, result)
}

// CreateObligation handles POST /api/v1/emi/obligations
func (h *EmiHandler) CreateObligation(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Loan account number is required", err)
		return
	}

	snapshot, err := h.service.CreateObligation(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, snapshot)
}

// GetAllocations handles GET /api/v1/emi/allocations/{loanAccountNo}
func (h *EmiHandler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	loanAccountNo := mux.Vars(r)["loanAccountNo"]

	allocations, err := h.service.GetAllocations(r.Context(), loanAccountNo)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, domain.AllocationsResponse{
		LoanAccountNo: loanAccountNo,
		Allocations:   allocations,
		Count:         len(allocations),
	})
}

// GetPaymentHistory handles GET /api/v1/emi/history/{loanAccountNo}
func (h *EmiHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	loanAccountNo := mux.Vars(r)["loanAccountNo"]

	payments, err := h.service.GetPaymentHistory(r.Context(), loanAccountNo)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, domain.PaymentHistoryResponse{
		LoanAccountNo: loanAccountNo,
		Payments:      payments,
		Count:         len(payments),
	})
}

// writeError maps business errors onto HTTP statuses. Anything that is not a
// known business error is a server-side failure.
func (h *EmiHandler) writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		h.logger.Error("unexpected error", zap.Error(err))
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeAccountNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeInvalidPaymentAmount, customError.ErrCodeInvalidObligation:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	default:
		h.logger.Error("operation failed", zap.String("code", businessErr.Code), zap.Error(err))
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}
