package anthropic

// Wire types for the Messages API.

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system"`
	Messages  []wireMessage `json:"messages"`
	Stream    bool          `json:"stream,omitempty"`
}

// wireMessage carries user/assistant turns only; system content is hoisted
// into messagesRequest.System by convertMessages.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// contentBlock is one element of the response content array. Only blocks of
// type "text" contribute to the final string.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// streamEvent is the envelope of one SSE payload. Event types other than
// content_block_delta (message_start, content_block_start, message_delta,
// ping, ...) are ignored by the stream loop.
type streamEvent struct {
	Type  string       `json:"type"`
	Delta *streamDelta `json:"delta"`
}

type streamDelta struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
