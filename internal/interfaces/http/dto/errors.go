package dto

import (
	"errors"
	"net/http"

	"github.com/shopcart/backend/internal/domain/shared"
)

// Error codes carried in ErrorInfo.Code. Domain codes are passed through
// unchanged so clients see the same vocabulary the services use.
const (
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeAlreadyExists       = shared.CodeAlreadyExists
	ErrCodeInvalidInput        = shared.CodeInvalidInput
	ErrCodeConcurrencyConflict = shared.CodeConcurrencyConflict
	ErrCodeUnauthorized        = shared.CodeUnauthorized
	ErrCodeForbidden           = shared.CodeForbidden
	ErrCodeInsufficientFunds   = shared.CodeInsufficientFunds
	ErrCodeUpstreamFailure     = shared.CodeUpstreamFailure

	// ErrCodeValidation is used when request binding fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInternal is used for anything without a mapping
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRateLimited is used when a client exceeds its request budget
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeInsufficientFunds:   http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUpstreamFailure:     http.StatusBadGateway,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResult is the client-facing form of an error
type ErrorResult struct {
	Status  int
	Code    string
	Message string
}

// internalMessage hides the cause of unmapped errors from clients
const internalMessage = "An unexpected error occurred"

// FromError resolves an error into status, code and message. Domain errors
// keep their own message; the wrapped cause is never exposed. Anything else,
// including domain errors with an unmapped code, becomes INTERNAL_ERROR.
func FromError(err error) ErrorResult {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if status, ok := ErrorCodeHTTPStatus[domainErr.Code]; ok {
			return ErrorResult{Status: status, Code: domainErr.Code, Message: domainErr.Message}
		}
	}
	return ErrorResult{
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeInternal,
		Message: internalMessage,
	}
}
