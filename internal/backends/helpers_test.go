package backends_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
	"github.com/stretchr/testify/require"
)

// recorder captures what a fake vendor endpoint received.
type recorder struct {
	mu     sync.Mutex
	hits   int
	path   string
	query  string
	header http.Header
	body   map[string]any
}

func (r *recorder) Hits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits
}

func (r *recorder) Body() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body
}

// newVendorServer returns an httptest server that answers every request with
// status and body, recording the request.
func newVendorServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)

		rec.mu.Lock()
		rec.hits++
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body = decoded
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newProvider(t *testing.T, backend string, values map[string]any) llm.Provider {
	t.Helper()
	factory, err := llm.Lookup(backend)
	require.NoError(t, err)
	p, err := factory(config.NewInstance(backend, "default", values))
	require.NoError(t, err)
	return p
}

func lines(ls ...string) llm.LineSeq {
	return func(yield func(string, error) bool) {
		for _, l := range ls {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// messagesOf extracts role/content pairs from a chat completions body.
func messagesOf(t *testing.T, body map[string]any) [][2]string {
	t.Helper()
	raw, ok := body["messages"].([]any)
	require.True(t, ok, "messages missing from request body")
	out := make([][2]string, 0, len(raw))
	for _, m := range raw {
		msg := m.(map[string]any)
		content, _ := msg["content"].(string)
		out = append(out, [2]string{msg["role"].(string), content})
	}
	return out
}

func chatCompletion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 5, "completion_tokens": 1, "total_tokens": 6},
	})
	return string(b)
}
