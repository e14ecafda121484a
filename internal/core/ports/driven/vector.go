package driven

import "context"

// VectorIndex provides exact nearest-neighbour search over a fixed
// set of vectors. The index is rebuilt from scratch on every Build
// call and is never persisted.
type VectorIndex interface {
	// Build replaces the index content with the given vectors. The
	// position of each vector in the slice becomes its identity.
	Build(ctx context.Context, vectors [][]float32) error

	// Search finds the k nearest neighbours to the query vector by
	// Euclidean (L2) distance, closest first. Asking for more
	// neighbours than the index holds returns as many as exist.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors. Zero before the
	// first successful Build.
	Len() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the matched vector's position at build time.
	Position int

	// Distance is the L2 distance to the query (smaller is closer).
	Distance float64
}
