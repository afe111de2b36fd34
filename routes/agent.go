package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"quizgen-platform/internal/logger"
	"quizgen-platform/services"
	"quizgen-platform/utils"

	"github.com/gin-gonic/gin"
)

// GenerateQuestionsRequest is the payload for /agent/generate_questions.
type GenerateQuestionsRequest struct {
	UserAssessment    string `json:"user_assessment" binding:"required"`
	UserScore         int    `json:"user_score"`
	NumberOfQuestions int    `json:"number_of_questions"`
	QuestionType      string `json:"question_type" binding:"required"`
}

func SetupAgentRoutes(router *gin.Engine, agent *services.Agent) {
	group := router.Group("/agent")

	group.POST("/generate_questions", func(c *gin.Context) {
		var req GenerateQuestionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if req.NumberOfQuestions < 1 {
			utils.RespondWithBadRequest(c, "number_of_questions must be at least 1", nil)
			return
		}
		if req.UserScore < 1 || req.UserScore > 10 {
			utils.RespondWithBadRequest(c, "user_score must be between 1 and 10", nil)
			return
		}

		questionType, err := services.ParseQuestionType(req.QuestionType)
		if err != nil {
			utils.RespondWithBadRequest(c, "Unsupported question type", gin.H{"question_type": req.QuestionType})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
		defer cancel()

		understanding, err := agent.Assess(ctx, req.UserAssessment)
		if err != nil {
			logger.Error("assessment scoring failed", "error", err)
			utils.RespondWithInternalError(c, "Failed to score assessment", gin.H{"error": err.Error()})
			return
		}

		raw, err := agent.Generate(ctx, req.UserAssessment, req.UserScore, req.NumberOfQuestions, questionType)
		if err != nil {
			if errors.Is(err, services.ErrUnsupportedQuestionType) {
				utils.RespondWithBadRequest(c, "Unsupported question type", gin.H{"question_type": req.QuestionType})
				return
			}
			logger.Error("question generation failed", "type", string(questionType), "error", err)
			utils.RespondWithInternalError(c, "Failed to generate questions", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"understanding": understanding,
			"response":      raw,
		})
	})
}
