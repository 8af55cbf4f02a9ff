// ABOUTME: Request body construction for OpenAI Chat Completions
// ABOUTME: Maps the text-only Context into wire-format chat messages

package openai

import (
	"github.com/promptboost/promptboost/pkg/ai"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func buildRequestBody(model *ai.Model, ctx *ai.Context, opts *ai.StreamOptions) map[string]any {
	body := map[string]any{
		"model":    model.ID,
		"stream":   true,
		"messages": convertMessages(ctx),
		"stream_options": map[string]any{
			"include_usage": true,
		},
	}

	if opts != nil {
		if opts.MaxTokens > 0 {
			body["max_tokens"] = opts.MaxTokens
		}
		if opts.Temperature > 0 {
			body["temperature"] = opts.Temperature
		}
	}

	return body
}

func convertMessages(ctx *ai.Context) []chatMessage {
	var msgs []chatMessage

	if ctx.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: ctx.System})
	}
	for _, m := range ctx.Messages {
		msgs = append(msgs, chatMessage{Role: string(m.Role), Content: m.Text})
	}

	return msgs
}
