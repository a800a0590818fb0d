package ollama

import "github.com/smartpick/smartpick/providers/ai"

// Wire types for Ollama's native /api/chat and /api/tags endpoints.

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []ai.Message `json:"messages"`
	Options  chatOptions  `json:"options"`
	Stream   bool         `json:"stream"`
}

// chatOptions carries the generation knobs; Ollama nests them instead of
// using top-level temperature/max_tokens fields.
type chatOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type chatResponse struct {
	Message    *chatMessage `json:"message"`
	DoneReason string       `json:"done_reason"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamLine is one decoded NDJSON line of a streaming chat.
type streamLine struct {
	Message *chatMessage `json:"message"`
	Done    bool         `json:"done"`
}

type tagsResponse struct {
	Models []tagEntry `json:"models"`
}

type tagEntry struct {
	Name string `json:"name"`
}
