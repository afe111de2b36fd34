package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizgen-platform/internal/config"
)

func testRAGConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		VectorIndexPath: filepath.Join(t.TempDir(), "index.json"),
		MaxChunkSize:    200,
		ChunkOverlap:    20,
		MinChunkSize:    10,
	}
}

func TestRAGIngestThenRetrieve(t *testing.T) {
	cfg := testRAGConfig(t)
	rag := NewRAGService(cfg, &fakeEmbedder{})

	docPath := filepath.Join(t.TempDir(), "doc.txt")
	content := "Photosynthesis converts light into chemical energy.\n\nRespiration releases that energy back for the cell to use."
	if err := os.WriteFile(docPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := rag.Ingest(context.Background(), docPath); err != nil {
		t.Fatalf("ingest error: %v", err)
	}
	if _, err := os.Stat(cfg.VectorIndexPath); err != nil {
		t.Fatalf("index not persisted: %v", err)
	}

	got, err := rag.Retrieve(context.Background(), "Photosynthesis converts light into chemical energy.")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if !strings.Contains(got, "Photosynthesis") {
		t.Fatalf("retrieved wrong chunk: %q", got)
	}
}

func TestRAGIngestUnsupportedFile(t *testing.T) {
	rag := NewRAGService(testRAGConfig(t), &fakeEmbedder{})
	if err := rag.Ingest(context.Background(), "slides.pptx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestRAGIngestEmptyDocument(t *testing.T) {
	cfg := testRAGConfig(t)
	rag := NewRAGService(cfg, &fakeEmbedder{})

	docPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(docPath, []byte("   \n\n  "), 0644); err != nil {
		t.Fatal(err)
	}

	if err := rag.Ingest(context.Background(), docPath); err == nil {
		t.Fatal("expected error for document with no content")
	}
	if _, err := os.Stat(cfg.VectorIndexPath); !os.IsNotExist(err) {
		t.Fatal("empty ingest must not write an index")
	}
}

func TestRAGRetrieveBeforeIngest(t *testing.T) {
	rag := NewRAGService(testRAGConfig(t), &fakeEmbedder{})
	_, err := rag.Retrieve(context.Background(), "anything")
	if !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}
