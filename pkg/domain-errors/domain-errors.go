package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// Codes describe what went wrong in auth terms, not HTTP terms.
type Code string

const (
	CodeBadRequest        Code = "bad_request"
	CodeInvalidInput      Code = "invalid_input"
	CodeValidation        Code = "validation_failed"
	CodeInternal          Code = "internal_error"
	CodeUnauthorized      Code = "unauthorized"
	CodeTimeout           Code = "timeout"
	CodeRateLimited       Code = "rate_limited"
	CodeRemote            Code = "remote_error"
	CodeCancelled         Code = "cancelled"
	CodeNotInitialized    Code = "not_initialized"
	CodeMalformedRedirect Code = "malformed_redirect"

	// OAuth 2.0 error codes (RFC 6749 §5.2)
	CodeInvalidGrant   Code = "invalid_grant"   // Bad credentials, invalid/expired code or refresh token
	CodeInvalidRequest Code = "invalid_request" // Missing required parameter or malformed request
	CodeAccessDenied   Code = "access_denied"   // Resource owner or server denied request
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, adapter, and store layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in the chain,
// or fallback when err carries none.
func CodeOf(err error, fallback Code) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fallback
}
