package middleware

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/smartpick/smartpick/core/session"
	"github.com/smartpick/smartpick/providers/ai"
)

// RetryConfig holds the tuning parameters for the retry middleware. Zero
// values are replaced with the defaults documented per field.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first
	// failure. A value of 3 means the provider is called at most 4 times.
	// Default: 3.
	MaxRetries int

	// InitialBackoff is the wait before the first retry attempt. Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff. Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth multiplier
	// (backoff = min(InitialBackoff * BackoffFactor^attempt, MaxBackoff)).
	// Default: 2.0.
	BackoffFactor float64

	// JitterFraction adds random noise in [0, JitterFraction*backoff] to
	// avoid thundering-herd retries. Default: 0.1.
	JitterFraction float64

	// RetryableFunc reports whether an error should trigger a retry. The
	// default retries rate limits and transient server errors
	// (HTTP 429, 500, 502, 503, 529) based on the typed status code.
	RetryableFunc func(error) bool
}

// defaultRetryableFunc retries transient HTTP statuses carried by *ai.Error.
// Transport and malformed-response failures are not retried: the former may
// have side effects server-side, the latter will not improve on repeat.
func defaultRetryableFunc(err error) bool {
	providerErr, ok := ai.AsError(err)
	if !ok || providerErr.Kind != ai.ErrStatus {
		return false
	}

	switch providerErr.StatusCode {
	case 429, 500, 502, 503, 529:
		return true
	}
	return false
}

func applyRetryDefaults(config *RetryConfig) {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = 30 * time.Second
	}
	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}
	if config.JitterFraction == 0 {
		config.JitterFraction = 0.1
	}
	if config.RetryableFunc == nil {
		config.RetryableFunc = defaultRetryableFunc
	}
}

// computeBackoff returns the backoff for the given attempt (0-indexed):
// min(InitialBackoff * BackoffFactor^attempt, MaxBackoff) + jitter.
func computeBackoff(config RetryConfig, attempt int) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt))
	if base > float64(config.MaxBackoff) {
		base = float64(config.MaxBackoff)
	}

	jitter := base * config.JitterFraction * rand.Float64()
	return time.Duration(base + jitter)
}

// NewRetryMiddleware constructs a MiddlewareConfig that retries failed
// buffered requests per config. The Stream field of the returned config is
// nil: once a stream has begun delivering chunks a failure cannot be
// transparently retried without re-delivering text, so streaming calls bypass
// this middleware.
//
// On exhaustion the returned error wraps both [ErrRetryExhausted] and the
// last provider error.
func NewRetryMiddleware(config RetryConfig) session.MiddlewareConfig {
	applyRetryDefaults(&config)

	sendMiddleware := session.Middleware(func(next session.SendFunc) session.SendFunc {
		return func(ctx context.Context, request session.Request) (*ai.Response, error) {
			var lastErr error

			for attempt := 0; attempt <= config.MaxRetries; attempt++ {
				if attempt > 0 {
					backoff := computeBackoff(config, attempt-1)
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(backoff):
					}
				}

				response, err := next(ctx, request)
				if err == nil {
					return response, nil
				}

				lastErr = err
				if !config.RetryableFunc(err) {
					return nil, err
				}
			}

			return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
		}
	})

	return session.MiddlewareConfig{Send: sendMiddleware}
}
