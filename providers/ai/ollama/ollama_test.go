package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/smartpick/smartpick/providers/ai"
)

// TestBaseURL verifies that an OpenAI-compatibility suffix is stripped so the
// native endpoints resolve against the server root.
func TestBaseURL(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"http://localhost:11434/v1", "http://localhost:11434"},
		{"http://localhost:11434/v1/", "http://localhost:11434"},
		{"http://localhost:11434", "http://localhost:11434"},
		{"http://localhost:11434/", "http://localhost:11434"},
	}

	for _, testCase := range testCases {
		if got := baseURL(ai.Config{APIURL: testCase.in}); got != testCase.want {
			t.Errorf("baseURL(%q) = %q, want %q", testCase.in, got, testCase.want)
		}
	}
}

// TestFetchModels_SortsInstalledModels verifies the tags endpoint is used,
// no auth header is sent, and names come back sorted.
func TestFetchModels_SortsInstalledModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %q", request.URL.Path)
		}
		if got := request.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		fmt.Fprint(writer, `{"models":[{"name":"qwen2.5:7b"},{"name":"llama3.1:8b"},{"name":"mistral:latest"}]}`)
	}))
	defer server.Close()

	provider := New()
	models, err := provider.FetchModels(context.Background(), ai.Config{APIURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("FetchModels returned error: %v", err)
	}
	want := []string{"llama3.1:8b", "mistral:latest", "qwen2.5:7b"}
	if !reflect.DeepEqual(models, want) {
		t.Errorf("models = %v, want %v", models, want)
	}
}

// TestChat_SetsStreamFalseAndOptions verifies the non-streaming request shape:
// stream must be explicitly false (Ollama streams by default) and the
// generation knobs ride in the nested options object.
func TestChat_SetsStreamFalseAndOptions(t *testing.T) {
	var received map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", request.URL.Path)
		}
		body, _ := io.ReadAll(request.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("request body did not decode: %v", err)
		}
		fmt.Fprint(writer, `{"message":{"role":"assistant","content":"hi"},"done":true,"done_reason":"stop"}`)
	}))
	defer server.Close()

	provider := New()
	response, err := provider.Chat(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "Hi"}}, ai.Config{APIURL: server.URL, DefaultModel: "llama3.1:8b", Temperature: 0.5, MaxTokens: 128}, "")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if response.Content != "hi" {
		t.Errorf("Content = %q, want %q", response.Content, "hi")
	}

	if string(received["stream"]) != "false" {
		t.Errorf("stream = %s, want explicit false", received["stream"])
	}
	var options chatOptions
	if err := json.Unmarshal(received["options"], &options); err != nil {
		t.Fatalf("options did not decode: %v", err)
	}
	if options.Temperature != 0.5 || options.NumPredict != 128 {
		t.Errorf("options = %+v, want temperature 0.5 and num_predict 128", options)
	}
}

// TestChat_MissingMessageIsMalformed verifies that a body without a message
// object fails instead of silently yielding an empty response.
func TestChat_MissingMessageIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fmt.Fprint(writer, `{"done":true}`)
	}))
	defer server.Close()

	provider := New()
	_, err := provider.Chat(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "Hi"}}, ai.Config{APIURL: server.URL, DefaultModel: "llama3.1:8b"}, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	aiErr, ok := ai.AsError(err)
	if !ok || aiErr.Kind != ai.ErrMalformed {
		t.Errorf("expected malformed-response error, got %v", err)
	}
}

// TestChatStream_NDJSON verifies that each NDJSON line yields one chunk and
// an invalid line in the middle is dropped while its neighbors still arrive.
func TestChatStream_NDJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fmt.Fprintln(writer, `{"message":{"role":"assistant","content":"Hel"},"done":false}`)
		fmt.Fprintln(writer, `{"message":{"role":"assistant","content"`)
		fmt.Fprintln(writer, `{"message":{"role":"assistant","content":"lo"},"done":false}`)
		fmt.Fprintln(writer, `{"message":{"role":"assistant","content":""},"done":true,"done_reason":"stop"}`)
	}))
	defer server.Close()

	provider := New()
	var chunks []string
	err := provider.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "Hi"}}, ai.Config{APIURL: server.URL, DefaultModel: "llama3.1:8b"}, func(chunk string) {
		chunks = append(chunks, chunk)
	}, "")
	if err != nil {
		t.Fatalf("ChatStream returned error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}
	if joined := strings.Join(chunks, ""); joined != "Hello" {
		t.Errorf("joined chunks = %q, want %q", joined, "Hello")
	}
}

// TestChatStream_HTTPError verifies a non-2xx response becomes a typed error
// with no chunks delivered.
func TestChatStream_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		fmt.Fprint(writer, `{"error":"model not found"}`)
	}))
	defer server.Close()

	provider := New()
	calls := 0
	err := provider.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "Hi"}}, ai.Config{APIURL: server.URL, DefaultModel: "nope"}, func(chunk string) {
		calls++
	}, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 0 {
		t.Errorf("handler called %d times, want 0", calls)
	}
}
