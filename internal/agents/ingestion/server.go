// Package ingestion implements the ingestion agent: an MCP stdio
// server that parses documents, splits them into chunks, and persists
// the chunk sequence to the shared chunk store.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Version is the agent's MCP server version.
const Version = "0.1.0"

// Splitter divides normalised text into retrieval chunks.
type Splitter interface {
	Split(text string) []string
}

// Server is the ingestion agent. All state is held here rather than in
// package globals so a test can run several servers side by side.
type Server struct {
	registry driven.NormaliserRegistry
	splitter Splitter
	store    driven.ChunkStore
	server   *mcp.Server
}

// NewServer creates an ingestion agent over the given registry,
// splitter, and chunk store.
func NewServer(registry driven.NormaliserRegistry, splitter Splitter, store driven.ChunkStore) (*Server, error) {
	if registry == nil || splitter == nil || store == nil {
		return nil, fmt.Errorf("%w: registry, splitter and store are required", domain.ErrInvalidInput)
	}

	s := &Server{
		registry: registry,
		splitter: splitter,
		store:    store,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "askdoc-ingestion",
			Version: Version,
		}, nil),
	}
	s.registerTools()

	return s, nil
}

// Run serves the agent over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("Ingestion agent starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// ProcessFilesInput is the input schema for the process_files tool.
type ProcessFilesInput struct {
	FilePaths []string `json:"file_paths" jsonschema:"paths of the documents to parse and chunk"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_files",
		Description: "Parse documents, split them into text chunks, and save them to the shared chunk store",
	}, s.handleProcessFiles)
}

// handleProcessFiles parses each file in order, concatenates the
// extracted text, chunks it, and overwrites the chunk store. A parse
// failure aborts the whole batch without writing anything.
func (s *Server) handleProcessFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessFilesInput,
) (*mcp.CallToolResult, domain.IngestReport, error) {
	logger.Info("Processing %d file(s)", len(input.FilePaths))

	var texts []string
	for _, path := range input.FilePaths {
		logger.Info("Parsing %s", path)
		text, err := s.registry.Normalise(ctx, path)
		if errors.Is(err, domain.ErrUnsupportedType) {
			logger.Warn("Unsupported file type: %s", filepath.Ext(path))
			continue
		}
		if err != nil {
			logger.Error("Failed to parse %s: %v", path, err)
			return nil, domain.IngestReport{
				Status:  domain.StatusError,
				Message: fmt.Sprintf("Failed to parse %s: %v", path, err),
			}, nil
		}
		texts = append(texts, text)
	}

	chunks := s.splitter.Split(strings.Join(texts, domain.DocumentSeparator))
	if err := s.store.Save(ctx, chunks); err != nil {
		return nil, domain.IngestReport{}, fmt.Errorf("saving chunks: %w", err)
	}

	logger.Info("Created %d chunks. Saved to %s", len(chunks), s.store.Path())
	return nil, domain.IngestReport{
		Status:        domain.StatusSuccess,
		ChunksCreated: len(chunks),
	}, nil
}
