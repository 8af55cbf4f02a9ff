// ABOUTME: SSE response types for OpenAI Chat Completions streaming
// ABOUTME: Hand-written jlexer decoding for zero-reflection parsing on the hot path

package openai

import (
	"github.com/mailru/easyjson/jlexer"
)

// chatCompletionChunk is the top-level SSE chunk for streaming responses.
type chatCompletionChunk struct {
	ID      string
	Choices []chunkChoice
	Usage   *chunkUsage
}

type chunkChoice struct {
	Index        int
	Delta        chunkDelta
	FinishReason string
}

type chunkDelta struct {
	Role    string
	Content string
}

type chunkUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// decodeChunk parses one SSE data payload. Chunks arrive once per token, so
// the decoder avoids encoding/json reflection. String fields tolerate JSON
// null (OpenAI sends "content":null in role-announcement chunks).
func decodeChunk(data []byte) (chatCompletionChunk, error) {
	var c chatCompletionChunk
	l := jlexer.Lexer{Data: data}
	c.decode(&l)
	l.Consumed()
	return c, l.Error()
}

func (c *chatCompletionChunk) decode(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "id":
			c.ID = nullableString(l)
		case "choices":
			if l.IsNull() {
				l.Skip()
				break
			}
			l.Delim('[')
			for !l.IsDelim(']') {
				var ch chunkChoice
				ch.decode(l)
				c.Choices = append(c.Choices, ch)
				l.WantComma()
			}
			l.Delim(']')
		case "usage":
			if l.IsNull() {
				l.Skip()
				break
			}
			var u chunkUsage
			u.decode(l)
			c.Usage = &u
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (c *chunkChoice) decode(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "index":
			c.Index = l.Int()
		case "delta":
			c.Delta.decode(l)
		case "finish_reason":
			c.FinishReason = nullableString(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (d *chunkDelta) decode(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "role":
			d.Role = nullableString(l)
		case "content":
			d.Content = nullableString(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (u *chunkUsage) decode(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "prompt_tokens":
			u.PromptTokens = l.Int()
		case "completion_tokens":
			u.CompletionTokens = l.Int()
		case "total_tokens":
			u.TotalTokens = l.Int()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func nullableString(l *jlexer.Lexer) string {
	if l.IsNull() {
		l.Skip()
		return ""
	}
	return l.String()
}
