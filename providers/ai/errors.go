package ai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a provider failure so callers can react without
// parsing error strings.
type ErrorKind string

const (
	// ErrTransport: the connection could not be established or failed
	// mid-flight (network, DNS, TLS). Never retried here; retry policy
	// belongs to the caller.
	ErrTransport ErrorKind = "transport"

	// ErrStatus: the server answered with a status outside [200,300).
	// StatusCode and Body carry the diagnostics.
	ErrStatus ErrorKind = "http_status"

	// ErrMalformed: the body parsed as JSON but lacks the expected
	// completion field. This fails the call rather than returning empty
	// content, so callers can tell "empty output" from "schema mismatch".
	ErrMalformed ErrorKind = "malformed_response"
)

// Error is the failure type returned by every adapter operation. Diagnostic
// detail (status code, response body) is attached here rather than logged, so
// a calling UI can render it.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // set for ErrStatus
	Body       string // response body text, when available
	Err        error  // underlying cause, when any
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrStatus:
		if e.Body != "" {
			return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("non-2xx status %d", e.StatusCode)
	case ErrMalformed:
		if e.Err != nil {
			return fmt.Sprintf("malformed response: %v", e.Err)
		}
		if e.Body != "" {
			return fmt.Sprintf("malformed response: %s", e.Body)
		}
		return "malformed response"
	default:
		if e.Err != nil {
			return fmt.Sprintf("transport error: %v", e.Err)
		}
		return "transport error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewTransportError wraps a connection-level failure.
func NewTransportError(err error) *Error {
	return &Error{Kind: ErrTransport, Err: err}
}

// NewStatusError records a non-2xx response together with its drained body.
func NewStatusError(statusCode int, body string) *Error {
	return &Error{Kind: ErrStatus, StatusCode: statusCode, Body: body}
}

// NewMalformedError records a response that decoded but is missing the
// expected completion field.
func NewMalformedError(reason string, err error) *Error {
	return &Error{Kind: ErrMalformed, Body: reason, Err: err}
}

// AsError unwraps err into an *Error when one is present in the chain.
func AsError(err error) (*Error, bool) {
	var providerErr *Error
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}
