package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file extension no normaliser handles.
	// Unsupported files are skipped during ingestion, not fatal.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrChunkStoreMissing indicates the shared chunk store has never
	// been written. Ingestion must run before an index can be built.
	ErrChunkStoreMissing = errors.New("chunk store missing")

	// ErrIndexNotBuilt indicates retrieval was attempted before a
	// successful index build.
	ErrIndexNotBuilt = errors.New("vector index not built")

	// ErrNotReady indicates the pipeline readiness flag is unset:
	// either ingestion or indexing has not succeeded yet.
	ErrNotReady = errors.New("pipeline not ready")

	// ErrPipelineBusy indicates another pipeline invocation is in
	// flight. Only one runs at a time.
	ErrPipelineBusy = errors.New("pipeline busy")

	// ErrUnknownTool indicates the planning model selected a tool name
	// that is not in the dispatch table.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNoToolCall indicates the planning model answered directly
	// instead of selecting a tool.
	ErrNoToolCall = errors.New("no tool call in model response")
)
