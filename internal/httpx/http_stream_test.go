package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartpick/smartpick/providers/ai"
)

// chunkedReader yields its segments one per Read call, simulating arbitrary
// network fragmentation.
type chunkedReader struct {
	segments []string
	index    int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.index >= len(r.segments) {
		return 0, io.EOF
	}
	n := copy(p, r.segments[r.index])
	r.index++
	return n, nil
}

// collectSSE drains an SSEScanner into a payload slice.
func collectSSE(t *testing.T, scanner *SSEScanner) []string {
	t.Helper()
	var payloads []string
	for {
		payload, err := scanner.Next()
		if err == io.EOF {
			return payloads
		}
		if err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
		payloads = append(payloads, payload)
	}
}

// TestSSEScanner_ParsesDataLines verifies basic framing: data payloads come
// through, blanks and comments are skipped, [DONE] terminates.
func TestSSEScanner_ParsesDataLines(t *testing.T) {
	input := "data: {\"a\":1}\n\n: keepalive comment\ndata: {\"b\":2}\n\ndata: [DONE]\n\ndata: {\"never\":true}\n"
	scanner := NewSSEScanner(strings.NewReader(input))

	payloads := collectSSE(t, scanner)
	want := []string{`{"a":1}`, `{"b":2}`}
	if len(payloads) != len(want) || payloads[0] != want[0] || payloads[1] != want[1] {
		t.Errorf("payloads = %v, want %v", payloads, want)
	}
}

// TestSSEScanner_FragmentationInvariant verifies that the payload sequence is
// identical no matter how the byte stream is cut, including cuts inside the
// "data:" prefix and inside a JSON payload.
func TestSSEScanner_FragmentationInvariant(t *testing.T) {
	full := "data: {\"text\":\"Hel\"}\n\ndata: {\"text\":\"lo\"}\n\ndata: [DONE]\n\n"

	fragmentations := [][]string{
		{full},
		{"da", "ta: {\"text\":\"Hel\"}\n\ndata: {\"te", "xt\":\"lo\"}\n\ndata: [DONE]\n\n"},
		{"data: {\"text\":\"Hel\"}", "\n", "\ndata: {\"text\":\"lo\"}\n\nda", "ta: [DONE]\n\n"},
	}

	var reference []string
	for i, segments := range fragmentations {
		scanner := NewSSEScanner(&chunkedReader{segments: segments})
		payloads := collectSSE(t, scanner)
		if i == 0 {
			reference = payloads
			continue
		}
		if len(payloads) != len(reference) {
			t.Fatalf("fragmentation %d: got %d payloads, want %d", i, len(payloads), len(reference))
		}
		for j := range payloads {
			if payloads[j] != reference[j] {
				t.Errorf("fragmentation %d payload %d = %q, want %q", i, j, payloads[j], reference[j])
			}
		}
	}
}

// TestSSEScanner_NonDataFieldsSkipped verifies event:, id:, and retry: lines
// never surface as payloads.
func TestSSEScanner_NonDataFieldsSkipped(t *testing.T) {
	input := "event: message\nid: 42\nretry: 1000\ndata: {\"x\":1}\n\n"
	scanner := NewSSEScanner(strings.NewReader(input))

	payloads := collectSSE(t, scanner)
	if len(payloads) != 1 || payloads[0] != `{"x":1}` {
		t.Errorf("payloads = %v, want exactly the data line", payloads)
	}
}

// TestNDJSONScanner_ReturnsNonBlankLines verifies verbatim line delivery with
// blank lines skipped and EOF at end of input.
func TestNDJSONScanner_ReturnsNonBlankLines(t *testing.T) {
	input := "{\"a\":1}\n\n{\"b\":2}\n"
	scanner := NewNDJSONScanner(strings.NewReader(input))

	var lines []string
	for {
		line, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
		lines = append(lines, line)
	}

	if len(lines) != 2 || lines[0] != `{"a":1}` || lines[1] != `{"b":2}` {
		t.Errorf("lines = %v, want the two JSON objects", lines)
	}
}

// TestDoPostStream_NonOKDrainsBodyIntoError verifies that an error status
// produces a typed status error carrying the drained body, with the response
// fully consumed.
func TestDoPostStream_NonOKDrainsBodyIntoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q, want text/event-stream", got)
		}
		writer.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(writer, `{"error":"overloaded"}`)
	}))
	defer server.Close()

	_, err := DoPostStream(context.Background(), server.Client(), server.URL, "key", map[string]string{"q": "hi"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	aiErr, ok := ai.AsError(err)
	if !ok {
		t.Fatalf("expected *ai.Error, got %T: %v", err, err)
	}
	if aiErr.Kind != ai.ErrStatus {
		t.Errorf("Kind = %q, want %q", aiErr.Kind, ai.ErrStatus)
	}
	if aiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", aiErr.StatusCode, http.StatusServiceUnavailable)
	}
	if !strings.Contains(aiErr.Body, "overloaded") {
		t.Errorf("Body = %q, want the drained response body", aiErr.Body)
	}
}

// TestDoPostStream_TransportError verifies an unreachable server surfaces as
// a transport error.
func TestDoPostStream_TransportError(t *testing.T) {
	_, err := DoPostStream(context.Background(), &http.Client{}, "http://127.0.0.1:1", "", map[string]string{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	aiErr, ok := ai.AsError(err)
	if !ok || aiErr.Kind != ai.ErrTransport {
		t.Errorf("expected transport error, got %v", err)
	}
}

// TestTruncateString verifies the cap, the defaulting of non-positive
// maxLen, and that short strings pass through untouched.
func TestTruncateString(t *testing.T) {
	long := strings.Repeat("x", 600)

	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString(short) = %q", got)
	}
	truncated := TruncateString(long, 100)
	if !strings.HasPrefix(truncated, strings.Repeat("x", 100)) || !strings.Contains(truncated, "600") {
		t.Errorf("truncated = %q, want 100 chars plus a note with the total", truncated)
	}
	if got := TruncateString(long, 0); !strings.Contains(got, "truncated") || len(got) >= 600 {
		t.Errorf("zero maxLen should fall back to the default cap, got %d bytes", len(got))
	}
}
