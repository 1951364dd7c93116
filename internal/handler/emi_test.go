package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/rahul-9386/emi-management-system/internal/domain"
	customError "github.com/rahul-9386/emi-management-system/pkg/errors"
)

type MockEmiService struct {
	mock.Mock
}

func (m *MockEmiService) ValidateAccount(ctx context.Context, loanAccountNo string) (bool, error) {
	args := m.Called(ctx, loanAccountNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmiService) CalculateEmi(ctx context.Context, loanAccountNo string) (*domain.EmiDetails, error) {
	args := m.Called(ctx, loanAccountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmiDetails), args.Error(1)
}

func (m *MockEmiService) ProcessPayment(ctx context.Context, loanAccountNo string, paymentAmount decimal.Decimal, paymentMode string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, loanAccountNo, paymentAmount, paymentMode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

func (m *MockEmiService) GetAllocations(ctx context.Context, loanAccountNo string) ([]*domain.AllocationEntry, error) {
	args := m.Called(ctx, loanAccountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AllocationEntry), args.Error(1)
}

func (m *MockEmiService) GetPaymentHistory(ctx context.Context, loanAccountNo string) ([]*domain.PaymentReceipt, error) {
	args := m.Called(ctx, loanAccountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentReceipt), args.Error(1)
}

func (m *MockEmiService) CreateObligation(ctx context.Context, request *domain.CreateObligationRequest) (*domain.ObligationSnapshot, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObligationSnapshot), args.Error(1)
}

func newTestRouter(service EmiService) http.Handler {
	logger := zap.NewNop()
	emiHandler := NewEmiHandler(service, logger)
	healthHandler := NewHealthHandler(nil, nil, time.Second)
	return NewRouter(emiHandler, healthHandler, logger)
}

func doRequest(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestValidateAccountHandler(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("ValidateAccount", mock.Anything, "LA1001").Return(true, nil)
	mockService.On("ValidateAccount", mock.Anything, "LA9999").Return(false, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/emi/validate/LA1001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/emi/validate/LA9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":false`)
}

func TestCalculateEmiHandler(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("CalculateEmi", mock.Anything, "LA1001").Return(&domain.EmiDetails{
		LoanAccountNo:    "LA1001",
		PendingEmiAmount: decimal.RequireFromString("1000.00"),
		PenaltyCharges:   decimal.RequireFromString("50.00"),
		TotalAmount:      decimal.RequireFromString("1050.00"),
	}, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/emi/calculate/LA1001", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_amount":"1050"`)
}

func TestCalculateEmiHandler_NotFound(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("CalculateEmi", mock.Anything, "LA9999").
		Return(nil, customError.WrapAccountNotFound("LA9999"))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/emi/calculate/LA9999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No EMI details found for loan account: LA9999")
}

func TestProcessPaymentHandler(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	amount := decimal.RequireFromString("500.00")
	mockService.On("ProcessPayment", mock.Anything, "LA1001", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	}), "UPI").Return(&domain.PaymentResult{
		Receipt: &domain.PaymentReceipt{
			LoanAccountNo: "LA1001",
			PaymentAmount: amount,
			PaymentMode:   "UPI",
		},
		Allocations: []*domain.AllocationEntry{},
		Overpayment: decimal.Zero,
	}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/emi/payment", domain.ProcessPaymentRequest{
		LoanAccountNo: "LA1001",
		PaymentAmount: amount,
		PaymentMode:   "UPI",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"payment_mode":"UPI"`)
	mockService.AssertExpectations(t)
}

func TestProcessPaymentHandler_InvalidAmount(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("ProcessPayment", mock.Anything, "LA1001", mock.Anything, "UPI").
		Return(nil, customError.WrapInvalidPaymentAmount())

	rec := doRequest(t, router, http.MethodPost, "/api/v1/emi/payment", domain.ProcessPaymentRequest{
		LoanAccountNo: "LA1001",
		PaymentAmount: decimal.RequireFromString("-10.00"),
		PaymentMode:   "UPI",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment amount must be greater than zero")
}

func TestProcessPaymentHandler_MissingFields(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/emi/payment", map[string]string{
		"loan_account_no": "LA1001",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPaymentHandler_MalformedBody(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi/payment", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAllocationsHandler(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("GetAllocations", mock.Anything, "LA1001").Return([]*domain.AllocationEntry{
		{LoanAccountNo: "LA1001", AllocatedTo: domain.AllocationTargetPenalty, AllocatedAmount: decimal.RequireFromString("50.00")},
	}, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/emi/allocations/LA1001", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), `"allocated_to":"Penalty"`)
}

func TestGetAllocationsHandler_EmptyAccount(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("GetAllocations", mock.Anything, "LA9999").Return([]*domain.AllocationEntry{}, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/emi/allocations/LA9999", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestGetPaymentHistoryHandler(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("GetPaymentHistory", mock.Anything, "LA1001").Return([]*domain.PaymentReceipt{
		{LoanAccountNo: "LA1001", PaymentAmount: decimal.RequireFromString("500.00"), PaymentMode: "UPI"},
		{LoanAccountNo: "LA1001", PaymentAmount: decimal.RequireFromString("300.00"), PaymentMode: "NEFT"},
	}, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/emi/history/LA1001", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestCreateObligationHandler(t *testing.T) {
	mockService := &MockEmiService{}
	router := newTestRouter(mockService)

	mockService.On("CreateObligation", mock.Anything, mock.MatchedBy(func(r *domain.CreateObligationRequest) bool {
		return r.LoanAccountNo == "LA1001"
	})).Return(&domain.ObligationSnapshot{
		LoanAccountNo:    "LA1001",
		PendingEmiAmount: decimal.RequireFromString("1000.00"),
		TotalAmount:      decimal.RequireFromString("1000.00"),
	}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/emi/obligations", domain.CreateObligationRequest{
		LoanAccountNo:    "LA1001",
		PendingEmiAmount: decimal.RequireFromString("1000.00"),
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}
