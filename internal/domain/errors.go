package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal ErrorCode = "INTERNAL_ERROR"
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Request errors
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeMissingField ErrorCode = "MISSING_FIELD"
	CodeInvalidValue ErrorCode = "INVALID_VALUE"
	CodeOutOfRange   ErrorCode = "OUT_OF_RANGE"

	// Interview agent errors
	CodeGenerationUnavailable ErrorCode = "GENERATION_UNAVAILABLE"
	CodePersistence           ErrorCode = "PERSISTENCE_ERROR"
	CodeRetrieval             ErrorCode = "RETRIEVAL_ERROR"
)

// Sentinels for errors.Is. A DomainError matches a sentinel when the codes are equal.
var (
	ErrGenerationUnavailable = &DomainError{Code: CodeGenerationUnavailable, Message: "question generation is temporarily unavailable"}
	ErrPersistence           = &DomainError{Code: CodePersistence, Message: "failed to store interview record"}
	ErrRetrieval             = &DomainError{Code: CodeRetrieval, Message: "failed to retrieve interview history"}
	ErrNotFound              = &DomainError{Code: CodeNotFound, Message: "resource not found"}
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithContext attaches a key/value pair that is returned to clients as error details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewRecordNotFoundError(id int64) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("interview record not found with ID: %d", id), nil).
		WithContext("id", id)
}

// NewGenerationUnavailableError marks the generative backend as unusable for this request.
// Callers must surface it as "try again later", never as a generic failure.
func NewGenerationUnavailableError(cause error) *DomainError {
	return NewError(CodeGenerationUnavailable, ErrGenerationUnavailable.Message, cause)
}

func NewPersistenceError(cause error) *DomainError {
	return NewError(CodePersistence, ErrPersistence.Message, cause)
}

// NewRetrievalError hides the store error behind a generic message; the cause is kept for logs only.
func NewRetrievalError(cause error) *DomainError {
	return NewError(CodeRetrieval, ErrRetrieval.Message, cause)
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of field errors returned for client input problems.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	if len(v) == 1 {
		return "validation failed: " + v[0].Error()
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", v[0].Error(), len(v)-1)
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("'%s' is required", field),
	}
}

func NewInvalidValueError(field string, value interface{}, reason string) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeInvalidValue,
		Message: reason,
		Value:   value,
	}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("'%s' must be between %d and %d", field, min, max),
		Value:   value,
	}
}

// IsValidationError reports whether err carries client input problems.
func IsValidationError(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}
