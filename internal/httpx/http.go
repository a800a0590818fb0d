package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/smartpick/smartpick/providers/ai"
)

// HeaderOption is a single extra request header. Options are applied after
// the defaults, so an option can override the Authorization header when a
// backend authenticates differently (Anthropic's x-api-key).
type HeaderOption struct {
	Key   string
	Value string
}

// CloseWithLog closes body and logs a warning on failure. Close errors never
// override the primary error of the surrounding call.
func CloseWithLog(body io.Closer) {
	if err := body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}

// DoGetSync performs a GET request and decodes the JSON response into
// OutputStruct. An apiKey, when non-empty, is sent as a Bearer token; use
// header options to authenticate differently.
func DoGetSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, headers ...HeaderOption) (*OutputStruct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	applyHeaders(req, apiKey, headers)

	return decodeJSONResponse[OutputStruct](client, req, url)
}

// DoPostSync performs a POST request with a JSON body and decodes the JSON
// response into OutputStruct.
//
// Error handling strategy:
//   - transport failures (connection, DNS, TLS, context cancellation) come
//     back as *ai.Error with kind transport
//   - non-2xx statuses come back as *ai.Error with the status code and the
//     drained body text attached
//   - undecodable bodies come back as *ai.Error with kind malformed_response
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*OutputStruct, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	applyHeaders(req, apiKey, headers)

	return decodeJSONResponse[OutputStruct](client, req, url)
}

// decodeJSONResponse executes req, enforces the 2xx contract, and decodes the
// body. The body is always fully read and closed before returning.
func decodeJSONResponse[OutputStruct any](client *http.Client, req *http.Request, url string) (*OutputStruct, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, ai.NewTransportError(fmt.Errorf("error sending request: %w", err))
	}
	defer CloseWithLog(res.Body)

	// Cap body reads to maxResponseBodySize to prevent unbounded allocation.
	respBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		return nil, ai.NewTransportError(fmt.Errorf("error reading response body: %w", err))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, ai.NewStatusError(res.StatusCode, string(respBody))
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		slog.Debug("undecodable response body", "url", url, "status", res.StatusCode)
		return nil, ai.NewMalformedError(TruncateString(string(respBody), 500), err)
	}

	return &resStruct, nil
}

// applyHeaders sets the default JSON headers, the optional Bearer token, and
// any caller-supplied overrides, in that order.
func applyHeaders(req *http.Request, apiKey string, headers []HeaderOption) {
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}
}
