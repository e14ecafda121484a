// Package csvfile normalises CSV files into an aligned text table
// so column/value relationships survive chunking.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles CSV files.
type Normaliser struct{}

// New creates a new CSV normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".csv"}
}

// Normalise renders the CSV as a column-aligned text table, one
// record per line, header first.
func (n *Normaliser) Normalise(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv %s: %w", path, err)
	}

	return renderTable(records), nil
}

// renderTable pads each column to its widest value.
func renderTable(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	widths := make([]int, 0)
	for _, rec := range records {
		for i, field := range rec {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(field) > widths[i] {
				widths[i] = len(field)
			}
		}
	}

	var sb strings.Builder
	for r, rec := range records {
		if r > 0 {
			sb.WriteString("\n")
		}
		for i, field := range rec {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(field)
			if i < len(rec)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(field)))
			}
		}
	}
	return sb.String()
}
