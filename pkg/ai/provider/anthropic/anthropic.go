// ABOUTME: Anthropic Messages API streaming provider implementation
// ABOUTME: Handles SSE event parsing and text content accumulation

package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/promptboost/promptboost/pkg/ai"
	"github.com/promptboost/promptboost/pkg/ai/internal/httputil"
	"github.com/promptboost/promptboost/pkg/ai/internal/sse"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	messagesPath     = "/v1/messages"
	modelsPath       = "/v1/models"
	streamBufferSize = 64

	// The Messages API requires max_tokens; used when the caller sets none.
	defaultMaxTokens = 8192
)

// Provider implements ai.ApiProvider for the Anthropic Messages API.
type Provider struct {
	client *httputil.Client
}

// New creates an Anthropic provider. If apiKey is empty, it reads ANTHROPIC_API_KEY.
func New(apiKey, baseURL string) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = httputil.NormalizeBaseURL(baseURL)

	headers := map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
		"content-type":      "application/json",
	}

	return &Provider{
		client: httputil.NewClient(baseURL, headers),
	}
}

// Api returns the Anthropic API identifier.
func (p *Provider) Api() ai.Api {
	return ai.ApiAnthropic
}

// Stream initiates a streaming call to the Anthropic Messages API.
func (p *Provider) Stream(ctx context.Context, model *ai.Model, aiCtx *ai.Context, opts *ai.StreamOptions) *ai.EventStream {
	stream := ai.NewEventStream(streamBufferSize)

	go p.runStream(ctx, stream, model, aiCtx, opts)

	return stream
}

// runStream performs the HTTP request and processes SSE events in a goroutine.
func (p *Provider) runStream(
	ctx context.Context,
	stream *ai.EventStream,
	model *ai.Model,
	aiCtx *ai.Context,
	opts *ai.StreamOptions,
) {
	body := buildRequestBody(model, aiCtx, opts)

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		stream.FinishWithError(fmt.Errorf("failed to marshal request body: %w", err))
		return
	}

	reader, resp, err := p.client.StreamSSE(ctx, http.MethodPost, messagesPath, bytes.NewReader(bodyJSON))
	if err != nil {
		stream.FinishWithError(fmt.Errorf("failed to start SSE stream: %w", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		stream.FinishWithError(fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, errBody))
		return
	}

	processEvents(stream, reader)
}

// buildRequestBody assembles the Messages API payload.
func buildRequestBody(model *ai.Model, aiCtx *ai.Context, opts *ai.StreamOptions) map[string]any {
	maxTokens := defaultMaxTokens
	if opts != nil && opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}

	body := map[string]any{
		"model":      model.ID,
		"max_tokens": maxTokens,
		"stream":     true,
		"messages":   convertMessages(aiCtx.Messages),
	}
	if aiCtx.System != "" {
		body["system"] = aiCtx.System
	}
	if opts != nil && opts.Temperature > 0 {
		body["temperature"] = opts.Temperature
	}

	return body
}

// convertMessages transforms messages into Anthropic content-block format.
func convertMessages(msgs []ai.Message) []map[string]any {
	out := make([]map[string]any, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, map[string]any{
			"role": string(msg.Role),
			"content": []map[string]any{
				{"type": "text", "text": msg.Text},
			},
		})
	}
	return out
}

// processEvents reads SSE events and dispatches them to the EventStream.
func processEvents(stream *ai.EventStream, reader *sse.Reader) {
	var result ai.AssistantMessage

	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			stream.FinishWithError(fmt.Errorf("SSE read error: %w", err))
			return
		}

		if !dispatchEvent(stream, &result, ev) {
			return
		}
	}

	stream.Finish(&result)
}

// dispatchEvent routes a single SSE event to the appropriate handler.
// Returns false if the stream loop should stop.
func dispatchEvent(stream *ai.EventStream, result *ai.AssistantMessage, ev *sse.Event) bool {
	switch ev.Type {
	case "message_start":
		handleMessageStart(result, ev)
		return true
	case "content_block_delta":
		handleContentBlockDelta(stream, result, ev)
		return true
	case "message_delta":
		handleMessageDelta(result, ev)
		return true
	case "ping":
		stream.Send(ai.StreamEvent{Type: ai.EventPing})
		return true
	case "error":
		handleSSEError(stream, ev)
		return false
	default:
		// content_block_start/stop and message_stop carry nothing we track.
		return true
	}
}

// handleMessageStart parses the message_start event for model and usage info.
func handleMessageStart(result *ai.AssistantMessage, ev *sse.Event) {
	var payload struct {
		Message struct {
			Model string   `json:"model"`
			Usage ai.Usage `json:"usage"`
		} `json:"message"`
	}
	if json.Unmarshal([]byte(ev.Data), &payload) == nil {
		result.Model = payload.Message.Model
		result.Usage = payload.Message.Usage
	}
}

// handleContentBlockDelta processes text deltas.
func handleContentBlockDelta(stream *ai.EventStream, result *ai.AssistantMessage, ev *sse.Event) {
	var payload struct {
		Delta struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"delta"`
	}
	if json.Unmarshal([]byte(ev.Data), &payload) != nil {
		return
	}

	if payload.Delta.Type == "text_delta" && payload.Delta.Text != "" {
		result.Text += payload.Delta.Text
		stream.Send(ai.StreamEvent{Type: ai.EventContentDelta, Text: payload.Delta.Text})
	}
}

// handleMessageDelta processes message-level updates (stop_reason, usage).
func handleMessageDelta(result *ai.AssistantMessage, ev *sse.Event) {
	var payload struct {
		Delta struct {
			StopReason ai.StopReason `json:"stop_reason"`
		} `json:"delta"`
		Usage struct {
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if json.Unmarshal([]byte(ev.Data), &payload) != nil {
		return
	}

	if payload.Delta.StopReason != "" {
		result.StopReason = payload.Delta.StopReason
	}
	if payload.Usage.OutputTokens > 0 {
		result.Usage.OutputTokens = payload.Usage.OutputTokens
	}
}

// handleSSEError processes an error event from the SSE stream.
func handleSSEError(stream *ai.EventStream, ev *sse.Event) {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := ev.Data
	if json.Unmarshal([]byte(ev.Data), &payload) == nil && payload.Error.Message != "" {
		msg = payload.Error.Message
	}

	stream.FinishWithError(fmt.Errorf("anthropic stream error: %s", msg))
}
