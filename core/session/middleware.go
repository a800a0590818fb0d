package session

import (
	"context"

	"github.com/smartpick/smartpick/providers/ai"
)

// Request bundles the arguments of one provider call so middlewares can
// observe or transform them as a unit.
type Request struct {
	Messages []ai.Message
	Config   ai.Config
	Model    string // explicit model override; empty means use Config.DefaultModel
}

// SendFunc sends a chat request and returns the completed response. It is
// the base unit threaded through the send middleware chain.
type SendFunc func(ctx context.Context, request Request) (*ai.Response, error)

// StreamFunc sends a chat request and delivers chunks to onChunk until the
// stream completes. It is the base unit threaded through the stream
// middleware chain.
type StreamFunc func(ctx context.Context, request Request, onChunk ai.ChunkHandler) error

// Middleware intercepts and optionally transforms buffered provider calls.
// Each Middleware receives the next SendFunc in the chain and returns a new
// SendFunc that wraps it. Middlewares are applied outermost-first: the first
// middleware in the slice is the outermost wrapper.
type Middleware func(next SendFunc) SendFunc

// StreamMiddleware is the streaming counterpart of Middleware. It may wrap
// onChunk to observe the delivered fragments, but must forward each fragment
// exactly once and in order.
type StreamMiddleware func(next StreamFunc) StreamFunc

// MiddlewareConfig pairs a send middleware with its optional streaming
// counterpart. A nil Stream means streaming calls bypass this entry (used by
// retry, where mid-stream errors cannot be transparently retried).
type MiddlewareConfig struct {
	Send   Middleware
	Stream StreamMiddleware
}

// buildSendChain constructs the linear send chain. The base function calls
// the provider directly; middlewares are applied in reverse so the first
// entry in the slice is the first to execute on an incoming request.
func buildSendChain(provider ai.Provider, middlewares []MiddlewareConfig) SendFunc {
	var chain SendFunc = func(ctx context.Context, request Request) (*ai.Response, error) {
		return provider.Chat(ctx, request.Messages, request.Config, request.Model)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i].Send != nil {
			chain = middlewares[i].Send(chain)
		}
	}

	return chain
}

// buildStreamChain constructs the linear stream chain. Entries with a nil
// Stream field are skipped.
func buildStreamChain(provider ai.Provider, middlewares []MiddlewareConfig) StreamFunc {
	var chain StreamFunc = func(ctx context.Context, request Request, onChunk ai.ChunkHandler) error {
		return provider.ChatStream(ctx, request.Messages, request.Config, onChunk, request.Model)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i].Stream != nil {
			chain = middlewares[i].Stream(chain)
		}
	}

	return chain
}
