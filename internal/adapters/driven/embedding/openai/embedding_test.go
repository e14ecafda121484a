package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeddingServer answers every embeddings request with the given
// vectors, in the given index order.
func embeddingServer(t *testing.T, vectors map[int][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)

		data := make([]map[string]any, 0, len(vectors))
		for idx, vec := range vectors {
			data = append(data, map[string]any{"index": idx, "embedding": vec})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
	}))
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.Error(t, err)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, 1536, s.Dimensions())
}

func TestNewEmbeddingService_KnownModelDimensions(t *testing.T) {
	s, err := NewEmbeddingService(Config{APIKey: "k", Model: "text-embedding-3-large"})
	require.NoError(t, err)
	assert.Equal(t, 3072, s.Dimensions())
}

func TestNewEmbeddingService_DimensionOverride(t *testing.T) {
	s, err := NewEmbeddingService(Config{APIKey: "k", Dimensions: 256})
	require.NoError(t, err)
	assert.Equal(t, 256, s.Dimensions())
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	srv := embeddingServer(t, map[int][]float32{
		1: {0, 1},
		0: {1, 0},
	})
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := s.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{1, 0}, got[0])
	assert.Equal(t, []float32{0, 1}, got[1])
}

func TestEmbedBatch_Empty(t *testing.T) {
	s, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)

	got, err := s.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	srv := embeddingServer(t, map[int][]float32{0: {1, 0}})
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = s.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestEmbed_SingleVector(t *testing.T) {
	srv := embeddingServer(t, map[int][]float32{0: {0.5, 0.25}})
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := s.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, got)
}
