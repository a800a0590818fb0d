package openai

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/smartpick/smartpick/internal/httpx"
	"github.com/smartpick/smartpick/providers/ai"
)

const (
	modelsEndpoint          = "/models"
	chatCompletionsEndpoint = "/chat/completions"
)

// OpenAIProvider implements [ai.Provider] for OpenAI-compatible APIs.
type OpenAIProvider struct {
	client *http.Client
}

// New returns a ready-to-use OpenAI-compatible provider. Endpoint and
// credentials travel in the per-call [ai.Config], not in the provider.
func New() *OpenAIProvider {
	return &OpenAIProvider{client: &http.Client{}}
}

// Ensure OpenAIProvider implements ai.Provider at compile time.
var _ ai.Provider = (*OpenAIProvider)(nil)

// Name implements [ai.Provider].
func (p *OpenAIProvider) Name() string { return "OpenAI Compatible" }

// WithHttpClient replaces the default [http.Client] used for API calls.
// Useful for injecting custom timeouts, transports, or test doubles.
func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) *OpenAIProvider {
	p.client = httpClient
	return p
}

// chatIndicators and nonChatIndicators drive the model-list filter heuristic.
var (
	chatIndicators    = []string{"gpt", "chat", "claude", "deepseek", "qwen", "glm"}
	nonChatIndicators = []string{"embedding", "whisper", "tts", "dall-e"}
)

// isLikelyChatModel reports whether a model id looks like a chat model. Best
// effort only: an id is kept when it contains any chat-indicating substring,
// OR when it contains none of the non-chat substrings. Known quirk kept on
// purpose: the exclusion list is consulted only when no inclusive substring
// matched, so an id containing both "chat" and "embedding" passes the filter.
func isLikelyChatModel(id string) bool {
	for _, indicator := range chatIndicators {
		if strings.Contains(id, indicator) {
			return true
		}
	}
	for _, indicator := range nonChatIndicators {
		if strings.Contains(id, indicator) {
			return false
		}
	}
	return true
}

// FetchModels implements [ai.Provider] via GET {apiUrl}/models. Identifiers
// are filtered through the chat-model heuristic and returned sorted.
func (p *OpenAIProvider) FetchModels(ctx context.Context, config ai.Config) ([]string, error) {
	url := config.APIURL + modelsEndpoint

	resp, err := httpx.DoGetSync[modelsResponse](ctx, p.client, url, config.APIKey)
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Data))
	for _, entry := range resp.Data {
		if isLikelyChatModel(entry.ID) {
			models = append(models, entry.ID)
		}
	}
	sort.Strings(models)

	return models, nil
}

// Chat implements [ai.Provider] via a non-streaming POST to
// {apiUrl}/chat/completions.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []ai.Message, config ai.Config, model string) (*ai.Response, error) {
	url := config.APIURL + chatCompletionsEndpoint

	request := chatCompletionRequest{
		Model:       ai.ResolveModel(model, config, ""),
		Messages:    messages,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		Stream:      false,
	}

	resp, err := httpx.DoPostSync[chatCompletionResponse](ctx, p.client, url, config.APIKey, request)
	if err != nil {
		return nil, err
	}

	// A body without choices[0].message.content fails the call: the caller
	// could not otherwise tell schema mismatch from empty model output.
	if len(resp.Choices) == 0 {
		return nil, ai.NewMalformedError("response has no choices", nil)
	}
	if resp.Choices[0].Message.Content == nil {
		return nil, ai.NewMalformedError("response choice is missing message.content", nil)
	}

	return &ai.Response{
		Content:      *resp.Choices[0].Message.Content,
		FinishReason: resp.Choices[0].FinishReason,
	}, nil
}
