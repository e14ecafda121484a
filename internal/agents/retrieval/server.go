// Package retrieval implements the retrieval agent: an MCP stdio
// server that embeds the stored chunks into a flat vector index and
// answers nearest-neighbour queries against it.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Version is the agent's MCP server version.
const Version = "0.1.0"

// EmbedderFactory creates the embedding service on first use. Loading
// is deferred so the agent starts fast and only pays for the model
// when an indexing or retrieval call arrives.
type EmbedderFactory func() (driven.EmbeddingService, error)

// Server is the retrieval agent. The index, the chunk texts it maps
// to, and the lazily created embedder live here rather than in package
// globals; the mutex serialises index rebuilds against searches.
type Server struct {
	store   driven.ChunkStore
	index   driven.VectorIndex
	factory EmbedderFactory
	server  *mcp.Server

	mu       sync.Mutex
	embedder driven.EmbeddingService
	chunks   []string
	built    bool
}

// NewServer creates a retrieval agent over the given chunk store and
// vector index.
func NewServer(store driven.ChunkStore, index driven.VectorIndex, factory EmbedderFactory) (*Server, error) {
	if store == nil || index == nil || factory == nil {
		return nil, fmt.Errorf("%w: store, index and embedder factory are required", domain.ErrInvalidInput)
	}

	s := &Server{
		store:   store,
		index:   index,
		factory: factory,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "askdoc-retrieval",
			Version: Version,
		}, nil),
	}
	s.registerTools()

	return s, nil
}

// Run serves the agent over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("Retrieval agent starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the embedding service if one was created.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder == nil {
		return nil
	}
	err := s.embedder.Close()
	s.embedder = nil
	return err
}

// BuildIndexInput is the input schema for the build_index tool.
type BuildIndexInput struct{}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the user's question"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []string `json:"chunks"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_index",
		Description: "Read text chunks from the shared store, embed them, and build an in-memory vector index",
	}, s.handleBuildIndex)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Find the most relevant text chunks for a given query",
	}, s.handleRetrieve)
}

// embedderLocked lazily creates the embedding service. Callers must
// hold s.mu.
func (s *Server) embedderLocked() (driven.EmbeddingService, error) {
	if s.embedder != nil {
		return s.embedder, nil
	}
	logger.Info("Loading embedding service")
	embedder, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("creating embedding service: %w", err)
	}
	s.embedder = embedder
	logger.Info("Embedding service ready (model %s)", embedder.ModelName())
	return s.embedder, nil
}

// handleBuildIndex embeds every stored chunk and replaces the index.
// Zero chunks leave the index unset and come back as a warning.
func (s *Server) handleBuildIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ BuildIndexInput,
) (*mcp.CallToolResult, domain.IndexReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Building index from %s", s.store.Path())

	chunks, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrChunkStoreMissing) {
		return nil, domain.IndexReport{}, fmt.Errorf("chunk data not found, ingestion must run first: %w", err)
	}
	if err != nil {
		return nil, domain.IndexReport{}, fmt.Errorf("loading chunks: %w", err)
	}

	if len(chunks) == 0 {
		s.built = false
		s.chunks = nil
		return nil, domain.IndexReport{
			Status:  domain.StatusWarning,
			Message: "No text chunks found to index.",
		}, nil
	}

	embedder, err := s.embedderLocked()
	if err != nil {
		return nil, domain.IndexReport{}, err
	}

	logger.Info("Encoding %d chunks", len(chunks))
	vectors, err := embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, domain.IndexReport{}, fmt.Errorf("embedding chunks: %w", err)
	}

	if err := s.index.Build(ctx, vectors); err != nil {
		return nil, domain.IndexReport{}, fmt.Errorf("building index: %w", err)
	}

	s.chunks = chunks
	s.built = true

	logger.Info("Index built with %d vectors", s.index.Len())
	return nil, domain.IndexReport{
		Status:         domain.StatusSuccess,
		VectorsIndexed: s.index.Len(),
	}, nil
}

// handleRetrieve embeds the query and returns the nearest chunk texts
// in ascending distance order.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Retrieving for query %q", input.Query)

	if !s.built {
		return nil, RetrieveOutput{}, fmt.Errorf("index not built, call build_index first: %w", domain.ErrIndexNotBuilt)
	}

	topK := input.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	embedder, err := s.embedderLocked()
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	vector, err := embedder.Embed(ctx, input.Query)
	if err != nil {
		return nil, RetrieveOutput{}, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := s.index.Search(ctx, vector, topK)
	if err != nil {
		return nil, RetrieveOutput{}, fmt.Errorf("searching index: %w", err)
	}

	chunks := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Position < 0 || hit.Position >= len(s.chunks) {
			return nil, RetrieveOutput{}, fmt.Errorf("index returned position %d outside chunk range", hit.Position)
		}
		chunks = append(chunks, s.chunks[hit.Position])
	}

	logger.Info("Retrieved %d chunks", len(chunks))
	return nil, RetrieveOutput{Chunks: chunks}, nil
}
