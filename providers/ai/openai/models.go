package openai

import "github.com/smartpick/smartpick/providers/ai"

// Wire types for the /chat/completions and /models endpoints. The generic
// ai.Message marshals to the role/content shape this API expects, so it is
// sent as-is.

type chatCompletionRequest struct {
	Model       string       `json:"model"`
	Messages    []ai.Message `json:"messages"`
	Temperature float32      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
	Stream      bool         `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message      chatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// chatChoiceMessage keeps Content as a pointer so a missing field can be told
// apart from a deliberately empty completion.
type chatChoiceMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// streamChunk is one decoded SSE payload of a streaming completion.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamDelta struct {
	Content *string `json:"content"`
}

type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID string `json:"id"`
}
