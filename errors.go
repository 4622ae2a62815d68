package crm

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeIntegrity  ErrorType = "integrity"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeValidation ErrorType = "validation"
)

// Error codes consolidated from all modules
const (
	// Record lookup errors
	ErrCodeRecordNotFound = "RECORD_NOT_FOUND"

	// Integrity errors mapped from SQLSTATE class 23
	ErrCodeUniqueViolation     = "UNIQUE_VIOLATION"
	ErrCodeForeignKeyViolation = "FOREIGN_KEY_VIOLATION"
	ErrCodeIntegrityViolation  = "INTEGRITY_VIOLATION"

	// Storage errors
	ErrCodeQueryFailed       = "QUERY_FAILED"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodeConnectionFailed  = "CONNECTION_FAILED"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnknownField     = "UNKNOWN_FIELD"
	ErrCodeInvalidValue     = "INVALID_VALUE"
)

// Error represents unified errors from the data-access layer.
type Error struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Entity  string    `json:"entity,omitempty"`
	Field   string    `json:"field,omitempty"`
	Cause   error     `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
	switch {
	case e.Entity != "" && e.Field != "":
		msg = fmt.Sprintf("[%s:%s] entity %s, field '%s': %s", e.Type, e.Code, e.Entity, e.Field, e.Message)
	case e.Entity != "":
		msg = fmt.Sprintf("[%s:%s] entity %s: %s", e.Type, e.Code, e.Entity, e.Message)
	case e.Field != "":
		msg = fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithField adds field context to an Error
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithCause adds a cause to an Error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ============================================================================
// Error Constructors
// ============================================================================

// NewNotFoundError reports that a row the operation required does not exist.
// Lookups signal absence with a nil result instead; this error is reserved
// for operations whose contract needs the row (update, remove).
func NewNotFoundError(entity string, id int64) *Error {
	return &Error{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeRecordNotFound,
		Message: fmt.Sprintf("record %d not found", id),
		Entity:  entity,
	}
}

// NewIntegrityError wraps a constraint violation raised by the database.
func NewIntegrityError(entity, code, message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeIntegrity,
		Code:    code,
		Message: message,
		Entity:  entity,
		Cause:   cause,
	}
}

// NewStorageError wraps any database failure that is not a constraint
// violation.
func NewStorageError(entity, message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeStorage,
		Code:    ErrCodeQueryFailed,
		Message: message,
		Entity:  entity,
		Cause:   cause,
	}
}

// NewValidationError reports malformed input rejected before any SQL ran.
func NewValidationError(entity, field, message string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeValidationFailed,
		Message: message,
		Entity:  entity,
		Field:   field,
	}
}

// ============================================================================
// Error checking utilities
// ============================================================================

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeNotFound
	}
	return false
}

// IsIntegrityError checks if an error is a constraint violation
func IsIntegrityError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeIntegrity
	}
	return false
}

// IsStorageError checks if an error is a storage failure
func IsStorageError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeStorage
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeValidation
	}
	return false
}
