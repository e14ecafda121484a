// Package file provides the file-backed chunk store shared between
// the ingestion and retrieval agents. The store is a single JSON
// file holding the full ordered chunk sequence as an array of
// strings; every successful ingestion fully overwrites it.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// DefaultFileName is the chunk store file name inside the data dir.
const DefaultFileName = "chunks.json"

// ChunkStore is a JSON-file-backed implementation of driven.ChunkStore.
type ChunkStore struct {
	filePath string
}

// NewChunkStore creates a chunk store at the given path. If path is
// empty, defaults to ~/.askdoc/data/chunks.json.
func NewChunkStore(path string) (*ChunkStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".askdoc", "data", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &ChunkStore{filePath: path}, nil
}

// Save atomically replaces the store content with the given ordered
// chunk sequence. A temp-file rename keeps readers from ever seeing
// a partial write.
func (s *ChunkStore) Save(_ context.Context, chunks []string) error {
	if chunks == nil {
		chunks = []string{}
	}

	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("encoding chunks: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".chunks-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing chunks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing chunk store: %w", err)
	}
	return nil
}

// Load returns the full ordered chunk sequence. Returns
// domain.ErrChunkStoreMissing if ingestion has never run.
func (s *ChunkStore) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrChunkStoreMissing
		}
		return nil, fmt.Errorf("reading chunk store: %w", err)
	}

	var chunks []string
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("decoding chunk store: %w", err)
	}
	return chunks, nil
}

// Path returns the backing file location.
func (s *ChunkStore) Path() string {
	return s.filePath
}
