package domain

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation entry. Messages are retained by
// the chat front-end only; the coordinator never feeds history back
// into planning or answering.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the message text.
	Content string

	// Context holds the source chunks an assistant answer was built
	// from. Empty for user messages.
	Context []string

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time
}

// AnswerResult is the composite outcome of answering one query:
// the answer text plus the retrieved context it was grounded on.
// Failures surface as a plain-language Answer with empty Context and
// Failed set.
type AnswerResult struct {
	// Answer is the final user-facing text.
	Answer string

	// Context holds the chunks handed to the answer model.
	Context []string

	// Failed marks Answer as a pipeline failure message rather than a
	// model response.
	Failed bool
}
