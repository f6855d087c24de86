package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that an entry's debit and credit totals differ.
var ErrUnbalanced = errors.New("entry debits and credits do not balance")

// ErrImmutable indicates an attempt to modify a posted entry's data directly.
// Posted entries are corrected only by posting a reversing entry.
var ErrImmutable = errors.New("posted entries are immutable")

// ErrConflict indicates a concurrent-modification conflict, e.g. a journal
// number race between two posts in the same workplace. Posting retries these
// internally a bounded number of times before surfacing.
var ErrConflict = errors.New("concurrency conflict")

// AppError wraps a lower-level error with an HTTP-ish status code and message.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// UnbalancedEntryError carries the computed totals so callers can display
// exactly how far off balance the rejected entry is.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry is unbalanced: total debit %s, total credit %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

// Is lets errors.Is(err, ErrUnbalanced) match the typed error.
func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrUnbalanced
}

// ValidationError carries the field-level violations for a rejected entry.
// Violations are (field, message) pairs shaped by the validator.
type ValidationError struct {
	Violations []FieldViolation
}

// FieldViolation mirrors domain.Violation without importing the domain
// package, keeping apperrors dependency-free within the module.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Violations[0].Field, e.Violations[0].Message)
}

// Is lets errors.Is(err, ErrValidation) match the typed error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
