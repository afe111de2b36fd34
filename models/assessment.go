package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentResult is a quiz result record owned by the external quiz
// frontend. This service only reads it.
type AssessmentResult struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User       primitive.ObjectID `json:"user" bson:"user"`
	Assessment string             `json:"assessment" bson:"assessment"`
	Score      float64            `json:"score" bson:"score"`
	MaxScore   float64            `json:"maxScore" bson:"maxScore"`
	Percentage float64            `json:"percentage" bson:"percentage"`
	TimeTaken  float64            `json:"timeTaken" bson:"timeTaken"`
	Answers    []AssessmentAnswer `json:"answers" bson:"answers"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt,omitempty"`
}

// AssessmentAnswer is one answered question within a result.
type AssessmentAnswer struct {
	Question      string `json:"question" bson:"question"`
	UserAnswer    string `json:"userAnswer" bson:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer" bson:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect" bson:"isCorrect"`
}
