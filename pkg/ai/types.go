// ABOUTME: Core AI SDK types: Role, Api, Model, Message, Usage, StopReason
// ABOUTME: Text-only surface shared across all providers; wire-format agnostic

package ai

// Role represents a message role in the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// StopReason indicates why the model stopped generating.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopMaxTokens StopReason = "max_tokens"
	StopStop      StopReason = "stop"
)

// Api identifies an API provider.
type Api string

const (
	ApiOpenAI    Api = "openai"
	ApiAnthropic Api = "anthropic"
)

// Model describes a chat-completion endpoint discovered from a host.
// Name falls back to ID when the host omits a display name.
type Model struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Family string `json:"family,omitempty"`
	Api    Api    `json:"api"`
}

// Message represents a single text message in a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// NewTextMessage creates a message with the given role and text.
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Text: text}
}

// Context holds the system prompt and messages for an LLM call.
type Context struct {
	System   string    `json:"system,omitempty"`
	Messages []Message `json:"messages"`
}

// StreamOptions configures streaming behavior.
type StreamOptions struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// AssistantMessage is the final result of a streaming response.
type AssistantMessage struct {
	Text       string     `json:"text"`
	StopReason StopReason `json:"stop_reason"`
	Usage      Usage      `json:"usage"`
	Model      string     `json:"model"`
}
