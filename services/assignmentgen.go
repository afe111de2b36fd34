package services

import (
	"context"
	"fmt"
	"time"

	"quizgen-platform/internal/logger"
	"quizgen-platform/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AssignmentGenerator batch-generates follow-up question sets for the most
// recent assessment results and writes them back to the database.
type AssignmentGenerator struct {
	results   *mongo.Collection
	questions *mongo.Collection
	agent     *Agent
}

// NewAssignmentGenerator creates a generator over db's collections.
func NewAssignmentGenerator(db *mongo.Database, agent *Agent) *AssignmentGenerator {
	return &AssignmentGenerator{
		results:   db.Collection("assessmentresults"),
		questions: db.Collection("generated_questions"),
		agent:     agent,
	}
}

// RecentResults returns the limit most recent assessment results.
func (g *AssignmentGenerator) RecentResults(ctx context.Context, limit int64) ([]models.AssessmentResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := g.results.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent results: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AssessmentResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return results, nil
}

// Run generates a validated question set per recent result and inserts it
// into generated_questions. Generation and parse failures are logged and the
// record skipped; the returned count is the number of sets stored.
func (g *AssignmentGenerator) Run(ctx context.Context, limit int64, count int, qt QuestionType) (int, error) {
	results, err := g.RecentResults(ctx, limit)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		logger.Info("no assessment results found")
		return 0, nil
	}

	stored := 0
	for _, result := range results {
		logger.Info("processing result", "user", result.User.Hex(), "score", result.Score)

		raw, err := g.agent.Generate(ctx, result.Assessment, int(result.Score), count, qt)
		if err != nil {
			logger.Error("question generation failed", "user", result.User.Hex(), "error", err)
			continue
		}

		parsed, err := ParseQuestionSet(qt, raw)
		if err != nil {
			logger.Error("could not parse generated questions", "user", result.User.Hex(), "error", err)
			continue
		}

		set := models.GeneratedQuestionSet{
			UserID:       result.User,
			QuestionType: string(qt),
			Questions:    parsed,
			Timestamp:    time.Now(),
		}
		if _, err := g.questions.InsertOne(ctx, set); err != nil {
			logger.Error("failed to store question set", "user", result.User.Hex(), "error", err)
			continue
		}
		stored++
	}
	return stored, nil
}
