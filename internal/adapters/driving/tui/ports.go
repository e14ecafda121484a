// Package tui provides the interactive chat interface for askdoc.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"errors"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/watcher"
)

// Ports aggregates the services the chat interface drives.
type Ports struct {
	// Pipeline runs document processing and query answering.
	Pipeline driving.PipelineService

	// History persists the conversation across sessions. Optional.
	History driven.HistoryStore

	// Watch flags the index as stale when a source file changes.
	// Optional.
	Watch *watcher.Watcher
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return errors.New("pipeline service is required")
	}
	return nil
}
