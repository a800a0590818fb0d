package middleware

import (
	"context"
	"time"

	"github.com/smartpick/smartpick/core/session"
	"github.com/smartpick/smartpick/providers/ai"
)

// NewTimeoutMiddleware creates a MiddlewareConfig that enforces a per-call
// deadline on both buffered and streaming provider calls. A StreamFunc does
// not return until its stream is fully consumed, so the deadline governs the
// complete lifetime of the stream, not just the time to first byte. A caller
// context with a shorter deadline wins, per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) session.MiddlewareConfig {
	return session.MiddlewareConfig{
		Send: func(next session.SendFunc) session.SendFunc {
			return func(ctx context.Context, request session.Request) (*ai.Response, error) {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				return next(ctx, request)
			}
		},
		Stream: func(next session.StreamFunc) session.StreamFunc {
			return func(ctx context.Context, request session.Request, onChunk ai.ChunkHandler) error {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				return next(ctx, request, onChunk)
			}
		},
	}
}
