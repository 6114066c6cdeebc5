package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound        ErrorCode = "account_not_found"
	DuplicateAccount       ErrorCode = "duplicate_account"
	InvalidAmount          ErrorCode = "invalid_amount"
	InsufficientFunds      ErrorCode = "insufficient_funds"
	SameAccountTransfer    ErrorCode = "same_account_transfer"
	AuthenticationFailed   ErrorCode = "authentication_failed"
	UnknownTransactionKind ErrorCode = "unknown_transaction_kind"
	IdentifierSpaceFull    ErrorCode = "identifier_space_exhausted"
	InvalidInput           ErrorCode = "invalid_input"
	InternalError          ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same error code, so that
// errors.Is works for copies produced by WithDetails.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy of e carrying details. The predefined errors
// below are shared, so they are never modified in place.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps the error code to the status code returned by the API.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case DuplicateAccount:
		return http.StatusConflict
	case InvalidAmount, SameAccountTransfer, InvalidInput:
		return http.StatusBadRequest
	case InsufficientFunds:
		return http.StatusUnprocessableEntity
	case AuthenticationFailed:
		return http.StatusUnauthorized
	case IdentifierSpaceFull:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrDuplicateAccount       = NewAppError(DuplicateAccount, "account already exists")
	ErrInvalidAmount          = NewAppError(InvalidAmount, "amount must be positive")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "insufficient funds")
	ErrSameAccountTransfer    = NewAppError(SameAccountTransfer, "cannot transfer to the same account")
	ErrAuthenticationFailed   = NewAppError(AuthenticationFailed, "invalid account number or PIN")
	ErrUnknownTransactionKind = NewAppError(UnknownTransactionKind, "unknown transaction kind")
	ErrIdentifierSpaceFull    = NewAppError(IdentifierSpaceFull, "no free account identifiers left")
)
