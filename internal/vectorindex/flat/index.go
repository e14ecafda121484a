// Package flat provides an exact nearest-neighbour vector index.
// Search is a brute-force scan over all vectors by Euclidean (L2)
// distance; there is no approximation and no persistence. The index
// is rebuilt from scratch on every Build call.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory flat L2 index.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
}

// New creates an empty flat index.
func New() *Index {
	return &Index{}
}

// Build replaces the index content with the given vectors. Vector
// positions become their identities. All vectors must share one
// dimension.
func (ix *Index) Build(_ context.Context, vectors [][]float32) error {
	dimension := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("vector %d: empty", i)
		}
		if dimension == 0 {
			dimension = len(v)
		}
		if len(v) != dimension {
			return fmt.Errorf("vector %d: dimension %d, want %d", i, len(v), dimension)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dimension = dimension
	ix.vectors = vectors
	return nil
}

// Search finds the k nearest neighbours to the query by L2 distance,
// closest first. Asking for more neighbours than the index holds
// returns as many as exist.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.vectors) == 0 {
		return nil, nil
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("query dimension %d, want %d", len(query), ix.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]driven.VectorHit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = driven.VectorHit{Position: i, Distance: l2(query, v)}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Position < hits[b].Position
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// l2 computes the Euclidean distance between two equal-length vectors.
func l2(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
