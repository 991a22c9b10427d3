// Package summarizertest provides a fake OpenAI-compatible chat-completion
// server for tests.
package summarizertest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const CompletionsPath = "/v1/chat/completions"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the subset of a chat-completion request the tests inspect.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream"`
	MaxTokens int64     `json:"max_tokens"`

	Header http.Header `json:"-"`
}

// Upstream records every request it receives and answers with Respond.
type Upstream struct {
	Server  *httptest.Server
	Respond func(w http.ResponseWriter, req Request)

	mu       sync.Mutex
	requests []Request
}

func NewUpstream(t *testing.T, respond func(w http.ResponseWriter, req Request)) *Upstream {
	t.Helper()

	u := &Upstream{Respond: respond}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serveHTTP))
	t.Cleanup(u.Server.Close)

	return u
}

// BaseURL is the value to configure as the client's base URL.
func (u *Upstream) BaseURL() string {
	return u.Server.URL + "/v1/"
}

func (u *Upstream) Requests() []Request {
	u.mu.Lock()
	defer u.mu.Unlock()

	return append([]Request(nil), u.requests...)
}

func (u *Upstream) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != CompletionsPath {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req Request
	if err = json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Header = r.Header.Clone()

	u.mu.Lock()
	u.requests = append(u.requests, req)
	u.mu.Unlock()

	u.Respond(w, req)
}

// ChunkEvent is the JSON payload of one streamed delta.
func ChunkEvent(content string) string {
	payload := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion.chunk",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"delta":         map[string]any{"content": content},
				"finish_reason": nil,
			},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}

	return string(data)
}

// WriteStream writes each payload as an SSE data event, then flushes.
func WriteStream(w http.ResponseWriter, payloads ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)

	for _, payload := range payloads {
		fmt.Fprintf(w, "data: %s\n\n", payload)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// WriteCompletion answers a non-streaming request with a single choice.
func WriteCompletion(w http.ResponseWriter, content string) {
	payload := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError answers with an OpenAI-style error body.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    "invalid_request_error",
		},
	})
}
