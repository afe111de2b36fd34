package services

import (
	"context"
	"fmt"

	"quizgen-platform/internal/ai"
	"quizgen-platform/internal/config"
	"quizgen-platform/internal/logger"
)

// RAGService composes extraction, chunking, embedding and the vector store
// into the ingest and retrieve operations.
type RAGService struct {
	extractor *TextExtractor
	chunker   *ChunkingService
	embedder  ai.Embedder
	store     *VectorStore
}

// NewRAGService wires the ingestion pipeline from configuration. The store
// handle carries the index path so callers with separate stores cannot
// clobber each other.
func NewRAGService(cfg *config.Config, embedder ai.Embedder) *RAGService {
	return &RAGService{
		extractor: NewTextExtractor(cfg),
		chunker:   NewChunkingService(cfg.MaxChunkSize, cfg.ChunkOverlap, cfg.MinChunkSize),
		embedder:  embedder,
		store:     NewVectorStore(cfg.VectorIndexPath),
	}
}

// Store exposes the service's vector store handle.
func (r *RAGService) Store() *VectorStore {
	return r.store
}

// Ingest runs the whole pipeline for one document: infer type, extract,
// chunk, embed, build and persist the index. Any stage failure fails the
// whole operation.
func (r *RAGService) Ingest(ctx context.Context, path string) error {
	fileType, err := InferFileType(path)
	if err != nil {
		return err
	}

	text, err := r.extractor.ExtractText(ctx, path, fileType)
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %w", path, err)
	}

	chunks, err := r.chunker.ChunkText(text, StrategyRecursive)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("document %s produced no chunks", path)
	}

	if err := r.store.Build(ctx, chunks, r.embedder); err != nil {
		return err
	}

	logger.Info("document ingested", "path", path, "type", string(fileType), "chunks", len(chunks))
	return nil
}

// Retrieve loads the persisted index and returns the text of the single best
// matching chunk for the query.
func (r *RAGService) Retrieve(ctx context.Context, query string) (string, error) {
	results, err := r.store.Search(ctx, query, 1, r.embedder)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no chunks matched query")
	}
	return results[0].Chunk.Text, nil
}
