package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"quizgen-platform/internal/logger"
	"quizgen-platform/internal/queue"
	"quizgen-platform/services"
	"quizgen-platform/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// IngestRequest is the payload for /rag/ingest and /rag/ingest_async.
type IngestRequest struct {
	Path string `json:"path" binding:"required"`
}

// RetrieveRequest is the payload for /rag/retrieve.
type RetrieveRequest struct {
	Query string `json:"query" binding:"required"`
}

// SetupRAGRoutes registers the ingestion and retrieval endpoints. asynqClient
// may be nil when Redis is not configured; the async endpoint then reports
// the queue as unavailable.
func SetupRAGRoutes(router *gin.Engine, rag *services.RAGService, asynqClient *asynq.Client) {
	group := router.Group("/rag")

	group.POST("/ingest", func(c *gin.Context) {
		var req IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if _, err := services.InferFileType(req.Path); err != nil {
			utils.RespondWithBadRequest(c, "Unsupported document", gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Minute)
		defer cancel()

		if err := rag.Ingest(ctx, req.Path); err != nil {
			logger.Error("ingestion failed", "path", req.Path, "error", err)
			utils.RespondWithUnprocessable(c, "Failed to ingest document", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "document ingested",
			"path":    req.Path,
		})
	})

	group.POST("/ingest_async", func(c *gin.Context) {
		var req IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if asynqClient == nil {
			utils.RespondWithError(c, http.StatusServiceUnavailable, "service_unavailable", "Task queue is not configured", nil)
			return
		}

		if _, err := services.InferFileType(req.Path); err != nil {
			utils.RespondWithBadRequest(c, "Unsupported document", gin.H{"error": err.Error()})
			return
		}

		task, err := queue.NewIngestTask(req.Path)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to build ingestion task", gin.H{"error": err.Error()})
			return
		}

		info, err := asynqClient.Enqueue(task)
		if err != nil {
			logger.Error("failed to enqueue ingestion", "path", req.Path, "error", err)
			utils.RespondWithInternalError(c, "Failed to enqueue ingestion", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"message": "ingestion queued",
			"task_id": info.ID,
			"queue":   info.Queue,
		})
	})

	group.POST("/retrieve", func(c *gin.Context) {
		var req RetrieveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		content, err := rag.Retrieve(ctx, req.Query)
		if err != nil {
			if errors.Is(err, services.ErrIndexNotFound) {
				utils.RespondWithNotFound(c, "No document has been ingested yet")
				return
			}
			logger.Error("retrieval failed", "error", err)
			utils.RespondWithInternalError(c, "Failed to retrieve content", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"content": content})
	})
}
