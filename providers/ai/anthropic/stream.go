package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/smartpick/smartpick/internal/httpx"
	"github.com/smartpick/smartpick/providers/ai"
)

// ChatStream implements [ai.Provider] by sending a streaming request
// (stream=true) to {apiUrl}/messages and invoking onChunk for each text
// delta, in arrival order, as SSE events arrive.
//
// Anthropic SSE lifecycle:
//
//	message_start → content_block_start → content_block_delta(s) →
//	content_block_stop → message_delta → message_stop
//
// Only content_block_delta frames with a non-empty delta.text contribute a
// chunk; every other event type is skipped.
func (p *AnthropicProvider) ChatStream(ctx context.Context, messages []ai.Message, config ai.Config, onChunk ai.ChunkHandler, model string) error {
	url := config.APIURL + messagesEndpoint
	system, wireMessages := convertMessages(messages)

	request := messagesRequest{
		Model:     ai.ResolveModel(model, config, fallbackModel),
		MaxTokens: config.MaxTokens,
		System:    system,
		Messages:  wireMessages,
		Stream:    true,
	}

	httpResponse, err := httpx.DoPostStream(ctx, p.client, url, "", request, buildHeaders(config)...)
	if err != nil {
		return err
	}
	defer httpx.CloseWithLog(httpResponse.Body)

	sseScanner := httpx.NewSSEScanner(httpResponse.Body)

	for {
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

		// Try-parse, on failure skip this line. Anthropic interleaves many
		// control frames (message_start, ping, ...) with the text deltas; a
		// frame that does not decode is dropped, not escalated.
		var event streamEvent
		if parseErr := json.Unmarshal([]byte(payload), &event); parseErr != nil {
			continue
		}

		if event.Type == "content_block_delta" && event.Delta != nil && event.Delta.Text != "" {
			onChunk(event.Delta.Text)
		}
	}
}
