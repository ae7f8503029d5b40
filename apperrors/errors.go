package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or missing input. Field names the
// first offending request field when one is known.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Message: message, Field: field}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// AuthError is an authentication failure. The sentinels below are the only
// values; compare with errors.Is.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	ErrMissingToken       = &AuthError{Message: "Authentication required. Please login."}
	ErrInvalidCredentials = &AuthError{Message: "Invalid credentials"}
	ErrInvalidToken       = &AuthError{Message: "Invalid token"}
	ErrTokenExpired       = &AuthError{Message: "Token expired. Please login again."}
	ErrUserNotFound       = &AuthError{Message: "User not found"}
)

func IsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// StoreError wraps a failure of the backing store. Its message is never
// shown to clients.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return e.Op
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func NewStoreError(op string, cause error) *StoreError {
	return &StoreError{Op: op, Cause: cause}
}

// Wrap passes typed application errors through and wraps anything else as a
// StoreError for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTyped(err) {
		return err
	}
	return NewStoreError(op, err)
}

func isTyped(err error) bool {
	if _, ok := IsValidationError(err); ok {
		return true
	}
	if _, ok := IsConflictError(err); ok {
		return true
	}
	if _, ok := IsNotFoundError(err); ok {
		return true
	}
	if _, ok := IsAuthError(err); ok {
		return true
	}
	var se *StoreError
	return errors.As(err, &se)
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	if _, ok := IsValidationError(err); ok {
		return http.StatusBadRequest
	}
	if _, ok := IsConflictError(err); ok {
		return http.StatusBadRequest
	}
	if _, ok := IsAuthError(err); ok {
		return http.StatusUnauthorized
	}
	if _, ok := IsNotFoundError(err); ok {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
