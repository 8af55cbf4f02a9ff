// ABOUTME: Shared test fixtures for command tests: a fake chat gateway and env setup
// ABOUTME: Commands run against a temp HOME so no real configuration is touched

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// gatewayModelsJSON lists one usable model plus the auto sentinel the
// registry filters out.
const gatewayModelsJSON = `{"object":"list","data":[
	{"id":"gpt-4o","object":"model","owned_by":"openai","name":"GPT-4o"},
	{"id":"auto","object":"model","owned_by":"gateway"}
]}`

// fakeGateway serves the models listing and streams reply for every
// completion request.
func fakeGateway(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, gatewayModelsJSON)
		case "/v1/chat/completions":
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, sseText(reply))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// sseText builds an OpenAI-style SSE streaming body carrying text.
func sseText(text string) string {
	return fmt.Sprintf(`data: {"id":"chatcmpl-test","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"role":"assistant","content":""},"finish_reason":null}]}

data: {"id":"chatcmpl-test","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"%s"},"finish_reason":null}]}

data: {"id":"chatcmpl-test","object":"chat.completion.chunk","choices":[{"index":0,"delta":{},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}

data: [DONE]

`, escapeJSON(text))
}

func escapeJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}

// setupEnv points the command tree at a temp HOME and the given endpoint.
// Commands under test call the run functions directly, so the provider
// registration normally done by the root pre-run happens here.
func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROMPTBOOST_BASE_URL", baseURL)
	t.Setenv("PROMPTBOOST_API", "openai")
	t.Setenv("PROMPTBOOST_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "test-key")
	registerProviders()
}
