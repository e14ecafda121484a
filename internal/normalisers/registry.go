package normalisers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches text extraction by file extension.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser for each of its supported extensions.
// A later registration for the same extension wins.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// Normalise extracts text from the file at path using the normaliser
// registered for its extension. Returns domain.ErrUnsupportedType
// when no normaliser matches.
func (r *Registry) Normalise(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	n, ok := r.byExt[ext]
	if !ok {
		return "", domain.ErrUnsupportedType
	}
	return n.Normalise(ctx, path)
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
