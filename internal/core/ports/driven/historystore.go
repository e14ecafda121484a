package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// HistoryStore persists the chat conversation for the front-end.
// The coordinator never reads it; history is display state only.
type HistoryStore interface {
	// Append records a message at the end of the conversation.
	Append(ctx context.Context, msg domain.Message) error

	// Recent returns up to limit most recent messages in
	// chronological order.
	Recent(ctx context.Context, limit int) ([]domain.Message, error)

	// Clear removes all stored messages.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
