package ai

/*
	##### PROVIDER INPUT #####
*/

// MessageRole represents the role of a message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// Message represents a single message in a conversation. Messages are value
// types: once constructed they are never mutated, and ordering within a slice
// is the conversation order.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ProviderType selects which backend adapter serves a request.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	// ProviderCustom is any OpenAI-compatible endpoint (SiliconFlow, vLLM,
	// LM Studio, ...). It is served by the openai adapter.
	ProviderCustom ProviderType = "custom"
)

// Config carries everything an adapter needs for one call. Callers supply it
// fresh per call; adapters never mutate or persist it. Persistence of the
// configuration is the host's responsibility.
type Config struct {
	Provider        ProviderType `json:"provider"`
	APIURL          string       `json:"apiUrl"`
	APIKey          string       `json:"apiKey"`
	DefaultModel    string       `json:"defaultModel"`
	AvailableModels []string     `json:"availableModels"`
	Temperature     float32      `json:"temperature"` // Sampling temperature [0..1]
	MaxTokens       int          `json:"maxTokens"`   // Upper bound on generated tokens
}

/*
	##### PROVIDER OUTPUT #####
*/

// Response is the completed result of a non-streaming chat call. For
// streaming calls the content arrives through the chunk sink instead and the
// call's return value carries only completion or failure.
type Response struct {
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// ChunkHandler receives one incremental text fragment during streaming.
// Fragments are raw text deltas, delivered exactly once each, strictly in
// arrival order. Handlers run synchronously on the stream-reading path and
// must not block for long periods.
type ChunkHandler func(chunk string)
