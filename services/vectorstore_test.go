package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeEmbedder maps each text onto a deterministic 4-dimensional vector from
// its byte content, so distinct texts land at distinct points.
type fakeEmbedder struct {
	embedCalls int
	batchCalls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	vec := make([]float32, 4)
	for i, b := range []byte(text) {
		vec[i%4] += float32(b)
	}
	return vec, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 4)
		for j, b := range []byte(text) {
			vec[j%4] += float32(b)
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func TestVectorStoreSearchMissingIndex(t *testing.T) {
	store := NewVectorStore(filepath.Join(t.TempDir(), "index.json"))
	_, err := store.Search(context.Background(), "anything", 1, &fakeEmbedder{})
	if !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestVectorStoreBuildRejectsEmpty(t *testing.T) {
	store := NewVectorStore(filepath.Join(t.TempDir(), "index.json"))
	if err := store.Build(context.Background(), nil, &fakeEmbedder{}); err == nil {
		t.Fatal("expected error for empty chunk list")
	}
}

func TestVectorStoreBuildAndSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	store := NewVectorStore(path)
	embedder := &fakeEmbedder{}

	texts := []string{"alpha alpha alpha", "bravo bravo bravo", "zulu zulu zulu"}
	if err := store.Build(context.Background(), texts, embedder); err != nil {
		t.Fatalf("build error: %v", err)
	}
	if embedder.batchCalls != 1 {
		t.Fatalf("expected one batch embedding call, got %d", embedder.batchCalls)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("index file not persisted: %v", err)
	}

	// An exact text match embeds to the same point, distance zero
	results, err := store.Search(context.Background(), "bravo bravo bravo", 2, embedder)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "bravo bravo bravo" {
		t.Fatalf("nearest chunk is %q", results[0].Chunk.Text)
	}
	if results[0].Distance != 0 {
		t.Fatalf("exact match distance = %f", results[0].Distance)
	}
	if results[0].Distance > results[1].Distance {
		t.Fatal("results not sorted by distance")
	}
	if results[0].Chunk.ChunkID == "" || results[0].Chunk.ChunkID == results[1].Chunk.ChunkID {
		t.Fatal("chunk IDs must be unique and non-empty")
	}
}

func TestVectorStoreBuildOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	store := NewVectorStore(path)
	embedder := &fakeEmbedder{}

	if err := store.Build(context.Background(), []string{"old document text"}, embedder); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if err := store.Build(context.Background(), []string{"new document text"}, embedder); err != nil {
		t.Fatalf("second build: %v", err)
	}

	results, err := store.Search(context.Background(), "old document text", 10, embedder)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the new index contents, got %d results", len(results))
	}
	if results[0].Chunk.Text != "new document text" {
		t.Fatalf("stale chunk survived rebuild: %q", results[0].Chunk.Text)
	}
}

func TestVectorStoreCorruptIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewVectorStore(path)
	if _, err := store.Search(context.Background(), "query", 1, &fakeEmbedder{}); err == nil {
		t.Fatal("expected error for corrupt index")
	}
}
