package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// PipelineService is the front-end-facing surface of the coordinator.
// Operations are strictly sequential; callers are expected to keep at
// most one in flight.
type PipelineService interface {
	// Startup launches and connects all agent processes in fixed
	// order. Any connection failure aborts startup; there is no retry.
	Startup(ctx context.Context) error

	// ProcessDocuments runs ingestion then indexing over the given
	// files. Returns true only if both phases succeed, which also
	// sets readiness. Any failure leaves readiness false.
	ProcessDocuments(ctx context.Context, filePaths []string) bool

	// AnswerQuery plans a retrieval tool call, dispatches it, and
	// generates the final answer. Failures surface as plain-language
	// answer text with empty context, never as an error.
	AnswerQuery(ctx context.Context, query string) domain.AnswerResult

	// Ready reports whether both ingestion and indexing have
	// succeeded for the current document set.
	Ready() bool

	// Shutdown releases agent connections in reverse order of
	// acquisition, best-effort.
	Shutdown() error
}
