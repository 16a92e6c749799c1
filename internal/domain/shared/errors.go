package shared

import (
	"errors"
	"fmt"
)

// Error codes carried by DomainError
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError with the same code, so that
// errors.Is(err, ErrNotFound) holds for every not-found error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a request that can never succeed as given.
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports a named entity that does not exist in the parish.
func NewNotFoundError(entity, key string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %q not found", entity, key))
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput = NewDomainError(CodeValidation, "Invalid input provided")
)

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
