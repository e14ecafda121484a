// Package plaintext normalises plain text and markdown files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents. Markdown is treated as
// plain text; its markup reads fine in retrieval context.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".md"}
}

// Normalise reads the file and returns its content as text.
func (n *Normaliser) Normalise(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s: %w: not valid UTF-8", path, domain.ErrInvalidInput)
	}

	return string(raw), nil
}
