package httpx

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/smartpick/smartpick/providers/ai"
)

// DoPostStream performs an HTTP POST request and returns the raw response
// with the body left open for incremental reading. The caller must close the
// body when done. On error paths the body is drained and closed before
// returning, and the drained text travels inside the returned *ai.Error so
// the caller can surface the backend's diagnostic message.
func DoPostStream(ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	applyHeaders(req, apiKey, headers)
	req.Header.Set("Accept", "text/event-stream")

	response, err := httpClient.Do(req)
	if err != nil {
		return nil, ai.NewTransportError(fmt.Errorf("error sending stream request: %w", err))
	}

	// For non-2xx responses, drain the (typically small, diagnostic) body and
	// close it before returning. No chunks are ever emitted for this call.
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		defer CloseWithLog(response.Body)
		errorBody, readErr := io.ReadAll(io.LimitReader(response.Body, maxResponseBodySize))
		if readErr != nil {
			return nil, ai.NewStatusError(response.StatusCode, fmt.Sprintf("(failed to read body: %v)", readErr))
		}
		return nil, ai.NewStatusError(response.StatusCode, string(errorBody))
	}

	return response, nil
}

// maxStreamLineSize is the maximum size of a single stream line (1 MB). The
// default bufio.Scanner limit is 64 KiB, which is too small for long
// completions delivered as one SSE event.
const maxStreamLineSize = 1 * 1024 * 1024

// maxResponseBodySize caps buffered body reads (10 MB) via io.LimitReader so
// a rogue response cannot exhaust memory.
const maxResponseBodySize int64 = 10 * 1024 * 1024

// newLineScanner builds the bufio.Scanner shared by both framings. Scanning
// by line is what makes frame extraction fragmentation-invariant: bytes split
// across arbitrary TCP reads reassemble into the same complete lines, and a
// trailing partial line is held back until its remainder arrives.
func newLineScanner(reader io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLineSize)
	return scanner
}

// SSEScanner reads Server-Sent-Events-style framing from an io.Reader: one
// payload per "data:" line. It skips blank lines and ":" comments and treats
// the literal [DONE] payload as end-of-stream.
type SSEScanner struct {
	scanner *bufio.Scanner
}

// NewSSEScanner creates an SSEScanner reading from reader. Individual lines
// up to maxStreamLineSize are supported; longer lines surface as an error
// wrapping bufio.ErrTooLong from Next.
func NewSSEScanner(reader io.Reader) *SSEScanner {
	return &SSEScanner{scanner: newLineScanner(reader)}
}

// Next returns the next SSE data payload. It returns io.EOF when the stream
// ends or when the [DONE] sentinel is encountered; the sentinel itself is
// never returned as a payload.
func (s *SSEScanner) Next() (string, error) {
	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			continue
		}

		// Skip SSE comments.
		if strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data:") {
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

			// [DONE] is the OpenAI end-of-stream sentinel.
			if data == "[DONE]" {
				return "", io.EOF
			}

			return data, nil
		}

		// Other SSE fields (event:, id:, retry:) carry no payload.
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("SSE scanner error: %w", err)
	}

	return "", io.EOF
}

// NDJSONScanner reads newline-delimited JSON framing: one complete JSON
// object per line, no prefix. Blank lines are skipped.
type NDJSONScanner struct {
	scanner *bufio.Scanner
}

// NewNDJSONScanner creates an NDJSONScanner reading from reader.
func NewNDJSONScanner(reader io.Reader) *NDJSONScanner {
	return &NDJSONScanner{scanner: newLineScanner(reader)}
}

// Next returns the next non-blank line. It returns io.EOF when the stream
// ends. The line is returned verbatim; deciding whether it parses is the
// caller's concern.
func (s *NDJSONScanner) Next() (string, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		return line, nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("NDJSON scanner error: %w", err)
	}

	return "", io.EOF
}
