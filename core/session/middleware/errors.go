package middleware

import "errors"

// ErrRetryExhausted is returned by the retry middleware when all retry
// attempts have been consumed without a successful response. It is wrapped
// together with the last underlying provider error, so callers can use
// errors.Is / errors.As to inspect either.
var ErrRetryExhausted = errors.New("smartpick: all retry attempts exhausted")
