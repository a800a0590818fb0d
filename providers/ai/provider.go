package ai

import "context"

// Provider is the contract every backend adapter must satisfy. One
// implementation exists per wire protocol (OpenAI-compatible, Anthropic,
// Ollama); the configured ProviderType picks among them.
//
// Model resolution is identical across adapters: the explicit model argument
// wins, then Config.DefaultModel, then a provider-specific hardcoded fallback
// where one exists (Anthropic only). Adapters do not pre-validate credentials
// or model names; a missing key surfaces as the backend's natural HTTP error
// so the caller can distinguish misconfiguration from transport trouble.
type Provider interface {
	// Name returns a short human-readable identifier for the backend.
	Name() string

	// FetchModels queries the backend's model-discovery endpoint (or returns
	// a static list when the backend has none) and returns model identifiers.
	// Returns an *Error when the HTTP call fails or the body is malformed.
	FetchModels(ctx context.Context, config Config) ([]string, error)

	// Chat sends the full message list and returns the completed response.
	// Returns an *Error on transport failure, non-2xx status, or a response
	// body missing the expected completion field.
	Chat(ctx context.Context, messages []Message, config Config, model string) (*Response, error)

	// ChatStream sends the full message list and invokes onChunk zero or more
	// times, strictly in arrival order, as text becomes available. It returns
	// nil once the stream ends, or an *Error if the connection fails, the
	// server answers non-2xx, or the transport errors mid-stream. Frames that
	// fail to parse as the provider's framing are dropped silently; a stray
	// control frame must not abort an otherwise healthy stream. Cancelling
	// ctx aborts the in-flight connection.
	ChatStream(ctx context.Context, messages []Message, config Config, onChunk ChunkHandler, model string) error
}

// ResolveModel applies the shared model precedence: explicit model, then the
// configured default, then fallback (empty for providers without one).
func ResolveModel(model string, config Config, fallback string) string {
	if model != "" {
		return model
	}
	if config.DefaultModel != "" {
		return config.DefaultModel
	}
	return fallback
}
