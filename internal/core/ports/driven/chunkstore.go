package driven

import "context"

// ChunkStore persists the ordered chunk sequence shared between the
// ingestion and retrieval agents. Each successful ingestion fully
// replaces the previous content; there is no incremental update.
type ChunkStore interface {
	// Save atomically replaces the store content with the given
	// ordered chunk sequence.
	Save(ctx context.Context, chunks []string) error

	// Load returns the full ordered chunk sequence. Returns
	// domain.ErrChunkStoreMissing if ingestion has never run.
	Load(ctx context.Context) ([]string, error)

	// Path returns the backing file location, for logging.
	Path() string
}
