package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quizgen-platform/internal/logger"
	"quizgen-platform/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportSender pushes each user's latest assessment result to an external
// reporting endpoint.
type ReportSender struct {
	collection *mongo.Collection
	endpoint   string
	httpClient *http.Client
}

// NewReportSender creates a sender reading from the assessmentresults
// collection of db.
func NewReportSender(db *mongo.Database, endpoint string) *ReportSender {
	return &ReportSender{
		collection: db.Collection("assessmentresults"),
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LatestPerUser returns the most recent assessment result for every user.
func (s *ReportSender) LatestPerUser(ctx context.Context) ([]models.AssessmentResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user"},
			{Key: "latestReport", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$latestReport"}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate latest reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.AssessmentResult
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// SendAll posts every latest report to the endpoint. Per-report failures are
// logged and skipped; the returned count is the number delivered.
func (s *ReportSender) SendAll(ctx context.Context) (int, error) {
	if s.endpoint == "" {
		return 0, fmt.Errorf("report endpoint is not configured")
	}

	reports, err := s.LatestPerUser(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, report := range reports {
		if err := s.send(ctx, report); err != nil {
			logger.Error("failed to send report", "user", report.User.Hex(), "error", err)
			continue
		}
		logger.Info("report sent", "user", report.User.Hex(), "score", report.Score)
		sent++
	}
	return sent, nil
}

func (s *ReportSender) send(ctx context.Context, report models.AssessmentResult) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
