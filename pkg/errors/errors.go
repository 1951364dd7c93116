package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrAccountNotFound      = errors.New("loan account not found")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrInvalidObligation    = errors.New("invalid obligation snapshot")
)

// Error codes
const (
	ErrCodeAccountNotFound      = "ACCOUNT_NOT_FOUND"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInvalidObligation    = "INVALID_OBLIGATION"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap common errors with business context

func WrapAccountNotFound(loanAccountNo string) *BusinessError {
	return NewBusinessError(
		ErrCodeAccountNotFound,
		fmt.Sprintf("No EMI details found for loan account: %s", loanAccountNo),
		ErrAccountNotFound,
	)
}

func WrapInvalidPaymentAmount() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		"Payment amount must be greater than zero",
		ErrInvalidPaymentAmount,
	)
}

func WrapInvalidObligation(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidObligation,
		message,
		ErrInvalidObligation,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
