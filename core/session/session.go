package session

import (
	"context"
	"errors"
	"strings"

	"github.com/smartpick/smartpick/core/parse"
	"github.com/smartpick/smartpick/core/prompt"
	"github.com/smartpick/smartpick/core/selection"
	"github.com/smartpick/smartpick/providers/ai"
	"github.com/smartpick/smartpick/providers/ai/anthropic"
	"github.com/smartpick/smartpick/providers/ai/ollama"
	"github.com/smartpick/smartpick/providers/ai/openai"
	"github.com/smartpick/smartpick/providers/memory"
	"github.com/smartpick/smartpick/providers/memory/history"
)

// Configuration faults detected before any provider call is made. These are
// caller-side mistakes, distinct from the *ai.Error taxonomy the adapters
// return.
var (
	ErrAPIKeyRequired = errors.New("api key is required for this provider")
	ErrModelRequired  = errors.New("no model selected")
)

// Session owns one logical conversation. Construct one per conversation and
// pass it to whatever issues chat calls; there is no hidden global state.
type Session struct {
	provider    ai.Provider
	store       memory.Store
	config      ai.Config
	multiTurn   bool
	maxTurns    int
	middlewares []MiddlewareConfig
	sendChain   SendFunc
	streamChain StreamFunc
}

// Option customizes a Session at construction time.
type Option func(*Session)

// WithProvider substitutes a specific provider implementation, overriding the
// one selected by the config's provider type. Intended for tests and hosts
// with custom backends.
func WithProvider(provider ai.Provider) Option {
	return func(s *Session) { s.provider = provider }
}

// WithStore substitutes the conversation history store.
func WithStore(store memory.Store) Option {
	return func(s *Session) { s.store = store }
}

// WithMultiTurn enables multi-turn mode: prior exchanges are replayed ahead
// of each new prompt, and completed exchanges are committed to history and
// trimmed to maxTurns turns.
func WithMultiTurn(maxTurns int) Option {
	return func(s *Session) {
		s.multiTurn = true
		s.maxTurns = maxTurns
	}
}

// WithMiddlewares installs the middleware chain, outermost-first. The chains
// are built in New once every option has settled the provider.
func WithMiddlewares(configs ...MiddlewareConfig) Option {
	return func(s *Session) {
		s.middlewares = append(s.middlewares, configs...)
	}
}

// providerFor maps the configured provider type to an adapter. The custom
// type (and anything unrecognized) routes to the OpenAI-compatible adapter,
// the broadest of the three surfaces.
func providerFor(providerType ai.ProviderType) ai.Provider {
	switch providerType {
	case ai.ProviderAnthropic:
		return anthropic.New()
	case ai.ProviderOllama:
		return ollama.New()
	default:
		return openai.New()
	}
}

// New constructs a Session for config. Without options it uses the adapter
// matching config.Provider, a fresh in-memory history, single-turn mode, and
// no middleware.
func New(config ai.Config, options ...Option) *Session {
	s := &Session{
		provider: providerFor(config.Provider),
		store:    history.New(),
		config:   config,
	}

	for _, option := range options {
		option(s)
	}

	s.sendChain = buildSendChain(s.provider, s.middlewares)
	s.streamChain = buildStreamChain(s.provider, s.middlewares)

	return s
}

// validateConfig rejects calls that are misconfigured on the caller's side
// before any network traffic happens. Ollama runs locally and needs no key.
func (s *Session) validateConfig() error {
	if s.config.APIKey == "" && s.config.Provider != ai.ProviderOllama {
		return ErrAPIKeyRequired
	}
	if s.config.DefaultModel == "" {
		return ErrModelRequired
	}
	return nil
}

// buildRequest renders the template against the context and assembles the
// provider request: replayed history (multi-turn only) followed by the
// rendered user prompt, with the template's model/temperature/maxTokens
// overrides applied to a copy of the session config.
func (s *Session) buildRequest(template prompt.Template, promptContext prompt.Context) (Request, string) {
	promptContext.Selection = selection.Normalize(promptContext.Selection)
	rendered := prompt.Render(template.Prompt, promptContext)

	var messages []ai.Message
	if s.multiTurn {
		messages = s.store.All()
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: rendered})

	config := s.config
	if template.Temperature != nil {
		config.Temperature = *template.Temperature
	}
	if template.MaxTokens > 0 {
		config.MaxTokens = template.MaxTokens
	}

	return Request{
		Messages: messages,
		Config:   config,
		Model:    template.Model,
	}, rendered
}

// commitExchange records a completed exchange in history and enforces the
// turn bound. Only called after the full assistant reply is known, so a
// failed or cancelled generation never pollutes history.
func (s *Session) commitExchange(userPrompt, assistantReply string) {
	s.store.Append(ai.Message{Role: ai.RoleUser, Content: userPrompt})
	s.store.Append(ai.Message{Role: ai.RoleAssistant, Content: assistantReply})
	s.store.Trim(s.maxTurns)
}

// Generate runs one streaming generation. Each text fragment is delivered to
// onChunk exactly once, in arrival order, as it arrives; the accumulated full
// text is returned once the stream completes. In multi-turn mode the
// completed exchange is committed to history. Cancelling ctx aborts the
// in-flight connection.
func (s *Session) Generate(ctx context.Context, template prompt.Template, promptContext prompt.Context, onChunk ai.ChunkHandler) (string, error) {
	if err := s.validateConfig(); err != nil {
		return "", err
	}

	request, userPrompt := s.buildRequest(template, promptContext)

	var accumulated strings.Builder
	err := s.streamChain(ctx, request, func(chunk string) {
		accumulated.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	if err != nil {
		return accumulated.String(), err
	}

	response := accumulated.String()
	if s.multiTurn {
		s.commitExchange(userPrompt, response)
	}

	return response, nil
}

// Complete runs one buffered (non-streaming) generation and returns the full
// response. History handling matches Generate.
func (s *Session) Complete(ctx context.Context, template prompt.Template, promptContext prompt.Context) (*ai.Response, error) {
	if err := s.validateConfig(); err != nil {
		return nil, err
	}

	request, userPrompt := s.buildRequest(template, promptContext)

	response, err := s.sendChain(ctx, request)
	if err != nil {
		return nil, err
	}

	if s.multiTurn {
		s.commitExchange(userPrompt, response.Content)
	}

	return response, nil
}

// CompleteAs runs a buffered generation and decodes the reply into T,
// tolerating code fences and minor JSON damage. Meant for templates that
// instruct the model to answer in JSON.
func CompleteAs[T any](ctx context.Context, s *Session, template prompt.Template, promptContext prompt.Context) (T, error) {
	response, err := s.Complete(ctx, template, promptContext)
	if err != nil {
		var zero T
		return zero, err
	}
	return parse.As[T](response.Content)
}

// Models lists the models available for the session's configuration.
func (s *Session) Models(ctx context.Context) ([]string, error) {
	return s.provider.FetchModels(ctx, s.config)
}

// History returns a defensive copy of the conversation so far.
func (s *Session) History() []ai.Message {
	return s.store.All()
}

// ClearHistory resets the conversation.
func (s *Session) ClearHistory() {
	s.store.Clear()
}

// Provider exposes the underlying adapter, mainly so hosts can show its name.
func (s *Session) Provider() ai.Provider {
	return s.provider
}
