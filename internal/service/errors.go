package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned by Login for both an unknown email
	// and a wrong password. The two cases are deliberately indistinguishable
	// so that account existence cannot be probed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenIsExpired marks an otherwise well-formed session token whose
	// validity window has passed.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrTokenIsInvalid marks a malformed or tampered session token.
	ErrTokenIsInvalid = errors.New("token is invalid")

	// ErrTokenCreationFailed wraps failures while signing a new token.
	ErrTokenCreationFailed = errors.New("token creation failed")
)

// ValidationError aggregates per-field validation failures so the transport
// layer can return structured messages to the caller. It is matched with
// [errors.As].
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready to collect
// field messages.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a validation message for the given field. The first message
// per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements the error interface with a deterministic field order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
