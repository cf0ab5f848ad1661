package httpres

import (
	"errors"
	"fmt"
)

// The error taxonomy the API maps onto HTTP status codes. Services return
// these; controllers translate whatever else reaches them into a 500 with a
// genericized message.

// ValidationError marks malformed or missing input. Field and AllowedValues
// are surfaced to the client when set.
type ValidationError struct {
	Field         string
	AllowedValues []string
	Message       string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a plain field-level validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewAllowedValuesError reports a value outside a field's allow-list.
func NewAllowedValuesError(field string, allowed []string) *ValidationError {
	return &ValidationError{
		Field:         field,
		AllowedValues: allowed,
		Message:       fmt.Sprintf("invalid value for %s", field),
	}
}

// NotFoundError marks an absent or inactive entity.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// ConflictError marks a unique-constraint violation, in practice a duplicate
// invoice_number.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// AuthError marks a missing, expired or otherwise invalid token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
