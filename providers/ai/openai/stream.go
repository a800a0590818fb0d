package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/smartpick/smartpick/internal/httpx"
	"github.com/smartpick/smartpick/providers/ai"
)

// ChatStream implements [ai.Provider] by sending a streaming request
// (stream=true) to {apiUrl}/chat/completions and invoking onChunk for each
// content delta, in arrival order, as SSE events arrive.
//
// Pre-stream failures (network, non-2xx) are returned before any chunk is
// delivered. The "data: [DONE]" sentinel ends the stream without emitting a
// chunk or an error.
func (p *OpenAIProvider) ChatStream(ctx context.Context, messages []ai.Message, config ai.Config, onChunk ai.ChunkHandler, model string) error {
	url := config.APIURL + chatCompletionsEndpoint

	request := chatCompletionRequest{
		Model:       ai.ResolveModel(model, config, ""),
		Messages:    messages,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		Stream:      true,
	}

	// Body stays open for SSE reading; closed when the loop exits.
	httpResponse, err := httpx.DoPostStream(ctx, p.client, url, config.APIKey, request)
	if err != nil {
		return err
	}
	defer httpx.CloseWithLog(httpResponse.Body)

	sseScanner := httpx.NewSSEScanner(httpResponse.Body)

	for {
		// Respect context cancellation between SSE reads; cancelling ctx also
		// aborts the underlying connection via the request context.
		if ctx.Err() != nil {
			return ai.NewTransportError(ctx.Err())
		}

		payload, sseErr := sseScanner.Next()
		if sseErr == io.EOF {
			return nil
		}
		if sseErr != nil {
			return ai.NewTransportError(fmt.Errorf("SSE read error: %w", sseErr))
		}

		// Try-parse, on failure skip this line: a stray or partial control
		// frame must not kill an otherwise healthy stream.
		var chunk streamChunk
		if parseErr := json.Unmarshal([]byte(payload), &chunk); parseErr != nil {
			continue
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != nil && *content != "" {
			onChunk(*content)
		}
	}
}
