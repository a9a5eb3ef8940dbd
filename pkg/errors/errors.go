package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error types
var (
	ErrRequest       = errors.New("request error")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrDecode        = errors.New("decode error")
)

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %v", errType, wrapped)
}

// RequestError is returned for anything that goes wrong once a call has
// left the client: transport failures, bad status codes, undecodable
// bodies, GraphQL errors surfaced by typed methods and null lookups.
type RequestError struct {
	Op         string   // Client operation, e.g. "market"
	StatusCode int      // HTTP status, 0 when no response was received
	Messages   []string // Server-provided GraphQL error messages
	Err        error    // Underlying cause
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString("blocktap")
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	b.WriteString(": request failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports ErrRequest for every RequestError so callers can match the
// kind without caring about the cause.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

// NewRequestError builds a RequestError for op.
func NewRequestError(op string, status int, err error, messages ...string) *RequestError {
	return &RequestError{Op: op, StatusCode: status, Messages: messages, Err: err}
}

// Validation returns an ErrValidation error for a bad argument.
func Validation(field, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, fmt.Sprintf(format, args...))
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join provides a convenience wrapper around errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}
