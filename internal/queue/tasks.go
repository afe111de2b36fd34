package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"quizgen-platform/services"
)

const (
	TaskIngestDocument = "rag:ingest"
)

type IngestPayload struct {
	Path string `json:"path"`
}

// NewIngestTask enqueues a document for background ingestion.
func NewIngestTask(path string) (*asynq.Task, error) {
	payload, err := json.Marshal(IngestPayload{Path: path})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskIngestDocument,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("default"),
	), nil
}

// TaskProcessor runs queued ingestion jobs against the RAG pipeline.
type TaskProcessor struct {
	rag *services.RAGService
}

func NewTaskProcessor(rag *services.RAGService) *TaskProcessor {
	return &TaskProcessor{rag: rag}
}

func (p *TaskProcessor) ProcessIngest(ctx context.Context, t *asynq.Task) error {
	var payload IngestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal failed: %w", asynq.SkipRetry)
	}

	log.Printf("Ingesting document: %s", payload.Path)

	if err := p.rag.Ingest(ctx, payload.Path); err != nil {
		// Bad paths and unsupported types never succeed on retry
		if _, inferErr := services.InferFileType(payload.Path); inferErr != nil {
			return fmt.Errorf("%v: %w", inferErr, asynq.SkipRetry)
		}
		return err
	}

	log.Printf("Document ingested successfully: %s", payload.Path)
	return nil
}
