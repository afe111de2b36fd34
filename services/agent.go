package services

import (
	"context"
	"fmt"

	"quizgen-platform/internal/ai"
)

// Agent scores a free-text assessment and dispatches question generation to
// the generator for the requested type.
type Agent struct {
	llm ai.LLM
}

// NewAgent creates an agent around a completion client.
func NewAgent(llm ai.LLM) *Agent {
	return &Agent{llm: llm}
}

// Assess rates the user's understanding on a 1-10 scale with one model call.
// The returned value is raw model text; it is not range-validated here.
func (a *Agent) Assess(ctx context.Context, assessment string) (string, error) {
	if a.llm == nil {
		return "", ErrMissingLLM
	}

	prompt := fmt.Sprintf(`You are an expert in understanding the user's understanding of the subject.
You are given a user assessment and you need to understand the user's understanding of the subject.
You need to return the user's understanding of the subject on a scale of 1 to 10.
The user assessment is as follows:
%s

The output should only contain the score and nothing else.`, assessment)

	return a.llm.Complete(ctx, prompt)
}

// Generate dispatches to the generator for the question type. Unknown types
// fail with an explicit unsupported-type error.
func (a *Agent) Generate(ctx context.Context, assessment string, score, count int, qt QuestionType) (string, error) {
	switch qt {
	case QuestionTypeMCQ, QuestionTypeTrueFalse, QuestionTypeFillBlank:
		return GenerateQuestions(ctx, a.llm, assessment, score, count, qt)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, qt)
}
