package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidLine indicates a ledger line that violates the debit xor credit rule.
// It wraps ErrValidation so callers matching on validation failures also catch it.
var ErrInvalidLine = fmt.Errorf("%w: invalid ledger line", ErrValidation)

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation that is not permitted from the current lifecycle state.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrUnbalancedEntry indicates a journal entry whose debits and credits differ beyond tolerance.
var ErrUnbalancedEntry = errors.New("journal entry is not balanced")

// ErrUnbalancedVoucher indicates a voucher whose debits and credits differ beyond tolerance.
var ErrUnbalancedVoucher = errors.New("voucher is not balanced")

// ErrInvalidPeriod indicates that the referenced fiscal period does not exist.
var ErrInvalidPeriod = errors.New("invalid fiscal period")

// ErrClosedPeriod indicates that the referenced fiscal period no longer accepts postings.
var ErrClosedPeriod = errors.New("fiscal period is closed")

// ErrPersistence indicates a failure in the underlying store.
var ErrPersistence = errors.New("persistence error")

// ErrUnauthorized indicates a missing or invalid caller identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError reports a missing resource of the given kind.
func NewNotFoundError(resource, id string) error {
	return NewAppError(404, fmt.Sprintf("%s %s not found", resource, id), ErrNotFound)
}

// NewValidationError reports an invalid input.
func NewValidationError(message string) error {
	return NewAppError(400, message, ErrValidation)
}

// NewPersistenceError wraps a store failure so that it matches ErrPersistence
// while keeping the driver error reachable through errors.As.
func NewPersistenceError(message string, err error) error {
	return NewAppError(500, message, fmt.Errorf("%w: %w", ErrPersistence, err))
}
