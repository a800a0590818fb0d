package ollama

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/smartpick/smartpick/internal/httpx"
	"github.com/smartpick/smartpick/providers/ai"
)

const (
	chatEndpoint = "/api/chat"
	tagsEndpoint = "/api/tags"
)

// OllamaProvider implements [ai.Provider] for a local Ollama server.
type OllamaProvider struct {
	client *http.Client
}

// New returns a ready-to-use Ollama provider. The server address travels in
// the per-call [ai.Config]; no credentials are involved.
func New() *OllamaProvider {
	return &OllamaProvider{client: &http.Client{}}
}

// Ensure OllamaProvider implements ai.Provider at compile time.
var _ ai.Provider = (*OllamaProvider)(nil)

// Name implements [ai.Provider].
func (p *OllamaProvider) Name() string { return "Ollama" }

// WithHttpClient replaces the default [http.Client] used for API calls.
func (p *OllamaProvider) WithHttpClient(httpClient *http.Client) *OllamaProvider {
	p.client = httpClient
	return p
}

// baseURL strips a trailing /v1 (or /v1/) from the configured API URL. Hosts
// commonly store the OpenAI-compatibility URL (http://localhost:11434/v1);
// the native endpoints used here hang off the bare server root.
func baseURL(config ai.Config) string {
	url := strings.TrimSuffix(config.APIURL, "/")
	return strings.TrimSuffix(url, "/v1")
}

// FetchModels implements [ai.Provider] via GET {baseUrl}/api/tags. Returns
// the installed model names sorted, or an empty list when the response lacks
// the models array.
func (p *OllamaProvider) FetchModels(ctx context.Context, config ai.Config) ([]string, error) {
	url := baseURL(config) + tagsEndpoint

	resp, err := httpx.DoGetSync[tagsResponse](ctx, p.client, url, "")
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Models))
	for _, entry := range resp.Models {
		models = append(models, entry.Name)
	}
	sort.Strings(models)

	return models, nil
}

// Chat implements [ai.Provider] via a non-streaming POST to
// {baseUrl}/api/chat. stream:false is set explicitly because Ollama streams
// by default.
func (p *OllamaProvider) Chat(ctx context.Context, messages []ai.Message, config ai.Config, model string) (*ai.Response, error) {
	url := baseURL(config) + chatEndpoint

	request := chatRequest{
		Model:    ai.ResolveModel(model, config, ""),
		Messages: messages,
		Options: chatOptions{
			Temperature: config.Temperature,
			NumPredict:  config.MaxTokens,
		},
		Stream: false,
	}

	resp, err := httpx.DoPostSync[chatResponse](ctx, p.client, url, "", request)
	if err != nil {
		return nil, err
	}

	// A missing message object is a schema mismatch; an empty content string
	// is valid (the model produced nothing).
	if resp.Message == nil {
		return nil, ai.NewMalformedError("response is missing message", nil)
	}

	return &ai.Response{
		Content:      resp.Message.Content,
		FinishReason: resp.DoneReason,
	}, nil
}
