package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeneratedQuestionSet is a model-produced question batch written back by the
// assignment generator job.
type GeneratedQuestionSet struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id"`
	QuestionType string             `json:"question_type" bson:"question_type"`
	Questions    interface{}        `json:"questions" bson:"questions"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
}

// MCQItem is one multiple-choice question as the model is instructed to shape it.
type MCQItem struct {
	Question string   `json:"question" bson:"question"`
	Options  []string `json:"options" bson:"options"`
	Answer   string   `json:"answer" bson:"answer"`
}

// TrueFalseItem is one true/false question; Answer is "True" or "False".
type TrueFalseItem struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// FillBlankItem is one fill-in-the-blank question; Answer lists the blank
// fillers in question order.
type FillBlankItem struct {
	Question string   `json:"question" bson:"question"`
	Answer   []string `json:"answer" bson:"answer"`
}
