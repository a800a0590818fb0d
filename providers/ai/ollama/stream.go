package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/smartpick/smartpick/internal/httpx"
	"github.com/smartpick/smartpick/providers/ai"
)

// ChatStream implements [ai.Provider] by sending a streaming request
// (stream=true) to {baseUrl}/api/chat and invoking onChunk for each
// message.content fragment, in arrival order.
//
// Ollama frames its stream as newline-delimited JSON: one complete object
// per line, no "data:" prefix and no end sentinel; the connection simply
// closes after the final object (which carries done:true).
func (p *OllamaProvider) ChatStream(ctx context.Context, messages []ai.Message, config ai.Config, onChunk ai.ChunkHandler, model string) error {
	url := baseURL(config) + chatEndpoint

	request := chatRequest{
		Model:    ai.ResolveModel(model, config, ""),
		Messages: messages,
		Options: chatOptions{
			Temperature: config.Temperature,
			NumPredict:  config.MaxTokens,
		},
		Stream: true,
	}

	httpResponse, err := httpx.DoPostStream(ctx, p.client, url, "", request)
	if err != nil {
		return err
	}
	defer httpx.CloseWithLog(httpResponse.Body)

	lineScanner := httpx.NewNDJSONScanner(httpResponse.Body)

	for {
		if ctx.Err() != nil {
			return ai.NewTransportError(ctx.Err())
		}

		line, scanErr := lineScanner.Next()
		if scanErr == io.EOF {
			return nil
		}
		if scanErr != nil {
			return ai.NewTransportError(fmt.Errorf("NDJSON read error: %w", scanErr))
		}

		// Try-parse, on failure skip this line: a truncated or otherwise
		// invalid line must not abort the rest of the stream.
		var parsed streamLine
		if parseErr := json.Unmarshal([]byte(line), &parsed); parseErr != nil {
			continue
		}

		if parsed.Message != nil && parsed.Message.Content != "" {
			onChunk(parsed.Message.Content)
		}
	}
}
