package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartpick/smartpick/internal/httpx"
	"github.com/smartpick/smartpick/providers/ai"
)

const (
	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses it to version-lock response formats independently of
	// the URL.
	anthropicVersion = "2023-06-01"

	// fallbackModel is used when neither an explicit model nor a configured
	// default is supplied. Anthropic is the only backend with a hardcoded
	// fallback.
	fallbackModel = "claude-3-5-sonnet-20241022"
)

// staticModels is the curated model list returned by FetchModels; the API has
// no discovery endpoint. The order is intentional (newest and most capable
// first) and is NOT sorted.
var staticModels = []string{
	"claude-3-5-sonnet-20241022",
	"claude-3-5-haiku-20241022",
	"claude-3-opus-20240229",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// AnthropicProvider implements [ai.Provider] for Anthropic's Messages API.
type AnthropicProvider struct {
	client *http.Client
}

// New returns a ready-to-use Anthropic provider. Endpoint and credentials
// travel in the per-call [ai.Config], not in the provider.
func New() *AnthropicProvider {
	return &AnthropicProvider{client: &http.Client{}}
}

// Ensure AnthropicProvider implements ai.Provider at compile time.
var _ ai.Provider = (*AnthropicProvider)(nil)

// Name implements [ai.Provider].
func (p *AnthropicProvider) Name() string { return "Anthropic" }

// WithHttpClient replaces the default [http.Client] used for API calls.
func (p *AnthropicProvider) WithHttpClient(httpClient *http.Client) *AnthropicProvider {
	p.client = httpClient
	return p
}

// buildHeaders constructs the headers required for every Anthropic request:
// x-api-key carries the credential (Anthropic does not use Bearer tokens) and
// anthropic-version pins the wire format.
func buildHeaders(config ai.Config) []httpx.HeaderOption {
	return []httpx.HeaderOption{
		{Key: "x-api-key", Value: config.APIKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}

// FetchModels implements [ai.Provider]. Anthropic has no models endpoint, so
// a copy of the curated static list is returned and the context and config
// are not consulted.
func (p *AnthropicProvider) FetchModels(_ context.Context, _ ai.Config) ([]string, error) {
	models := make([]string, len(staticModels))
	copy(models, staticModels)
	return models, nil
}

// Chat implements [ai.Provider] via a non-streaming POST to
// {apiUrl}/messages. Response content arrives as an array of typed blocks;
// only "text" blocks contribute to the final string, concatenated in array
// order.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []ai.Message, config ai.Config, model string) (*ai.Response, error) {
	url := config.APIURL + messagesEndpoint
	system, wireMessages := convertMessages(messages)

	request := messagesRequest{
		Model:     ai.ResolveModel(model, config, fallbackModel),
		MaxTokens: config.MaxTokens,
		System:    system,
		Messages:  wireMessages,
	}

	// Empty apiKey so no Bearer token is injected; auth rides in x-api-key.
	resp, err := httpx.DoPostSync[messagesResponse](ctx, p.client, url, "", request, buildHeaders(config)...)
	if err != nil {
		return nil, err
	}

	if resp.Content == nil {
		return nil, ai.NewMalformedError("response is missing content blocks", nil)
	}

	var builder strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}

	return &ai.Response{
		Content:      builder.String(),
		FinishReason: resp.StopReason,
	}, nil
}
