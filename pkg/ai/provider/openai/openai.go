// ABOUTME: OpenAI Chat Completions streaming provider (also supports Ollama, vLLM, LM Studio)
// ABOUTME: Implements ApiProvider with SSE-based streaming for OpenAI-compatible APIs

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	pblog "github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/pkg/ai"
	"github.com/promptboost/promptboost/pkg/ai/internal/httputil"
	"github.com/promptboost/promptboost/pkg/ai/internal/sse"
)

const (
	defaultBaseURL     = "https://api.openai.com"
	chatCompletionPath = "/v1/chat/completions"
	modelsPath         = "/v1/models"
	streamBufferSize   = 64
)

// Provider implements the OpenAI Chat Completions API.
type Provider struct {
	client *httputil.Client
}

// New creates an OpenAI provider. If apiKey is empty, it reads OPENAI_API_KEY.
func New(apiKey, baseURL string) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = httputil.NormalizeBaseURL(baseURL)

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + apiKey,
	}

	return &Provider{
		client: httputil.NewClient(baseURL, headers),
	}
}

// Api returns the provider identifier.
func (p *Provider) Api() ai.Api {
	return ai.ApiOpenAI
}

// Stream initiates a streaming chat completion.
func (p *Provider) Stream(ctx context.Context, model *ai.Model, llmCtx *ai.Context, opts *ai.StreamOptions) *ai.EventStream {
	stream := ai.NewEventStream(streamBufferSize)

	go func() {
		if err := p.doStream(ctx, model, llmCtx, opts, stream); err != nil {
			stream.FinishWithError(err)
		}
	}()

	return stream
}

func (p *Provider) doStream(ctx context.Context, model *ai.Model, llmCtx *ai.Context, opts *ai.StreamOptions, stream *ai.EventStream) error {
	body := buildRequestBody(model, llmCtx, opts)
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	pblog.Debug("http: POST %s%s model=%s", p.client.BaseURL(), chatCompletionPath, model.ID)
	reader, resp, err := p.client.StreamSSE(ctx, http.MethodPost, chatCompletionPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()
	pblog.Debug("http: POST %s%s → %d", p.client.BaseURL(), chatCompletionPath, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, errBody)
	}

	return p.processSSE(model, reader, stream)
}

// processSSE drains chunks until [DONE] or EOF. Draining past finish_reason
// matters: with stream_options.include_usage the usage arrives in a trailing
// chunk of its own.
func (p *Provider) processSSE(model *ai.Model, reader *sse.Reader, stream *ai.EventStream) error {
	result := ai.AssistantMessage{Model: model.ID}

	for {
		event, err := reader.Next()
		if err != nil {
			if err != io.EOF {
				stream.Send(ai.StreamEvent{Type: ai.EventError, Error: err})
			}
			stream.Finish(&result)
			return nil
		}
		if event.Data == "[DONE]" {
			break
		}

		chunk, err := decodeChunk([]byte(event.Data))
		if err != nil {
			continue
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				stream.Send(ai.StreamEvent{
					Type: ai.EventContentDelta,
					Text: choice.Delta.Content,
				})
				result.Text += choice.Delta.Content
			}

			if choice.FinishReason != "" {
				result.StopReason = mapFinishReason(choice.FinishReason)
			}
		}

		if chunk.Usage != nil {
			result.Usage = ai.Usage{
				InputTokens:  chunk.Usage.PromptTokens,
				OutputTokens: chunk.Usage.CompletionTokens,
			}
		}
	}

	stream.Finish(&result)
	return nil
}

func mapFinishReason(reason string) ai.StopReason {
	switch reason {
	case "stop":
		return ai.StopEndTurn
	case "length":
		return ai.StopMaxTokens
	default:
		return ai.StopStop
	}
}
