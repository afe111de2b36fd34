package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"quizgen-platform/internal/ai"

	"github.com/google/uuid"
)

// ErrIndexNotFound means no index has been persisted at the store's path yet.
var ErrIndexNotFound = errors.New("vector index not found")

// Chunk is the unit of embedding and retrieval.
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	Text    string `json:"text"`
}

// SearchResult pairs a chunk with its L2 distance to the query (lower is closer).
type SearchResult struct {
	Chunk    Chunk   `json:"chunk"`
	Distance float64 `json:"distance"`
}

// VectorStore is a flat index of chunk embeddings persisted as one local
// document. Each Build wholesale-replaces the file at the store's path;
// there is no incremental insert, update or delete.
type VectorStore struct {
	path string
}

// NewVectorStore creates a store handle bound to an index path.
func NewVectorStore(path string) *VectorStore {
	return &VectorStore{path: path}
}

// Path returns the index file path this store reads and writes.
func (s *VectorStore) Path() string {
	return s.path
}

type indexFile struct {
	Dimension  int         `json:"dimension"`
	Chunks     []Chunk     `json:"chunks"`
	Embeddings [][]float32 `json:"embeddings"`
}

// Build embeds every chunk text, assigns each a fresh unique ID, and persists
// the whole index, overwriting any prior index at the path.
func (s *VectorStore) Build(ctx context.Context, texts []string, embedder ai.Embedder) error {
	if len(texts) == 0 {
		return fmt.Errorf("no chunks to index")
	}

	vecs, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vecs) != len(texts) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(texts))
	}

	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			ChunkID: uuid.NewString(),
			Text:    text,
		}
	}

	idx := indexFile{
		Dimension:  len(vecs[0]),
		Chunks:     chunks,
		Embeddings: vecs,
	}

	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	return nil
}

// Search loads the persisted index and returns the k nearest chunks to the
// query by L2 distance.
func (s *VectorStore) Search(ctx context.Context, query string, k int, embedder ai.Embedder) ([]SearchResult, error) {
	idx, err := s.load()
	if err != nil {
		return nil, err
	}

	queryVec, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(queryVec) != idx.Dimension {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(queryVec), idx.Dimension)
	}

	results := make([]SearchResult, len(idx.Chunks))
	for i, chunk := range idx.Chunks {
		results[i] = SearchResult{
			Chunk:    chunk,
			Distance: l2Distance(queryVec, idx.Embeddings[i]),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func (s *VectorStore) load() (*indexFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx indexFile
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	if len(idx.Chunks) == 0 || len(idx.Chunks) != len(idx.Embeddings) {
		return nil, fmt.Errorf("index at %s is empty or corrupt", s.path)
	}
	return &idx, nil
}

// l2Distance returns the squared Euclidean distance; ranking is unaffected
// by skipping the square root.
func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
