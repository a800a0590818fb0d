package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/smartpick/smartpick/core/session"
	"github.com/smartpick/smartpick/providers/ai"
)

// NewLoggingMiddleware creates a MiddlewareConfig that emits structured slog
// entries before and after every provider call. Streaming calls additionally
// record the number of chunks delivered. Message and response text is never
// logged; only shapes and timings.
//
// The logger parameter must not be nil; pass slog.Default() when no custom
// logger is configured.
func NewLoggingMiddleware(logger *slog.Logger) session.MiddlewareConfig {
	return session.MiddlewareConfig{
		Send:   buildSendLogging(logger),
		Stream: buildStreamLogging(logger),
	}
}

func buildSendLogging(logger *slog.Logger) session.Middleware {
	return func(next session.SendFunc) session.SendFunc {
		return func(ctx context.Context, request session.Request) (*ai.Response, error) {
			logger.InfoContext(ctx, "llm send",
				slog.String("provider", string(request.Config.Provider)),
				slog.String("model", effectiveModel(request)),
				slog.Int("messages", len(request.Messages)),
			)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm send failed",
					slog.String("model", effectiveModel(request)),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "llm send completed",
				slog.String("model", effectiveModel(request)),
				slog.Duration("duration", elapsed),
				slog.Int("content_length", len(response.Content)),
				slog.String("finish_reason", response.FinishReason),
			)

			return response, nil
		}
	}
}

func buildStreamLogging(logger *slog.Logger) session.StreamMiddleware {
	return func(next session.StreamFunc) session.StreamFunc {
		return func(ctx context.Context, request session.Request, onChunk ai.ChunkHandler) error {
			logger.InfoContext(ctx, "llm stream",
				slog.String("provider", string(request.Config.Provider)),
				slog.String("model", effectiveModel(request)),
				slog.Int("messages", len(request.Messages)),
			)

			start := time.Now()
			chunkCount := 0
			err := next(ctx, request, func(chunk string) {
				chunkCount++
				onChunk(chunk)
			})
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm stream failed",
					slog.String("model", effectiveModel(request)),
					slog.Duration("duration", elapsed),
					slog.Int("chunks", chunkCount),
					slog.String("error", err.Error()),
				)
				return err
			}

			logger.InfoContext(ctx, "llm stream completed",
				slog.String("model", effectiveModel(request)),
				slog.Duration("duration", elapsed),
				slog.Int("chunks", chunkCount),
			)

			return nil
		}
	}
}

// effectiveModel mirrors the adapters' model precedence for log output.
func effectiveModel(request session.Request) string {
	if request.Model != "" {
		return request.Model
	}
	return request.Config.DefaultModel
}
