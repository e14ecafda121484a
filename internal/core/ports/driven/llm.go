package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// LLMService provides chat-completion operations against a hosted
// language model.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - Any OpenAI-compatible host (DeepSeek, LM Studio, vLLM)
type LLMService interface {
	// Chat requests a single completion for the message sequence.
	// When opts.Tools is non-empty the model may respond with tool
	// calls instead of text; the result carries whichever came back.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures a chat completion request.
type ChatOptions struct {
	// MaxTokens caps the generated output. Zero means no cap.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// Tools, when non-empty, are offered to the model as selectable
	// functions.
	Tools []domain.ToolDescriptor
}

// ChatResult is the model's response to a chat completion request.
type ChatResult struct {
	// Content is the direct text response. Empty when the model chose
	// a tool instead.
	Content string

	// ToolCalls holds the tool invocations the model selected, in the
	// order it produced them.
	ToolCalls []domain.ToolCall
}
