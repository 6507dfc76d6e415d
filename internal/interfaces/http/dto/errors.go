package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication and authorization error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh    = "TOKEN_MAX_REFRESH"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeSellerRequired     = "SELLER_REQUIRED"
	ErrCodeApprovalRequired   = "APPROVAL_REQUIRED"
	ErrCodeStaffRequired      = "STAFF_REQUIRED"
	ErrCodePurchaseRequired   = "PURCHASE_REQUIRED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidState  = "INVALID_STATE"
)

// Input error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodePasswordMismatch = "PASSWORD_MISMATCH"
	ErrCodeFileTooLarge     = "FILE_TOO_LARGE"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
)

// Upstream error codes
const (
	ErrCodeStorage        = "STORAGE_ERROR"
	ErrCodePaymentGateway = "PAYMENT_GATEWAY_ERROR"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodePasswordMismatch: http.StatusBadRequest,
	ErrCodeFileTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeSellerRequired:     http.StatusForbidden,
	ErrCodeApprovalRequired:   http.StatusForbidden,
	ErrCodeStaffRequired:      http.StatusForbidden,
	ErrCodePurchaseRequired:   http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,

	// Upstream errors
	ErrCodeStorage:        http.StatusBadGateway,
	ErrCodePaymentGateway: http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Codes without an explicit entry fall back on their prefix: INVALID_* is a
// bad request and TOKEN_* is unauthorized. Anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "TOKEN_"):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
