package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quizgen-platform/internal/ai"
	"quizgen-platform/models"
)

// QuestionType is the closed set of question formats the generators produce.
type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "MCQ"
	QuestionTypeTrueFalse QuestionType = "TRUE_FALSE"
	QuestionTypeFillBlank QuestionType = "FILL_BLANK"
)

var (
	// ErrUnsupportedQuestionType is returned for any tag outside the closed set.
	ErrUnsupportedQuestionType = errors.New("unsupported question type")

	// ErrMissingLLM means no model handle was supplied to a generator.
	ErrMissingLLM = errors.New("llm is required")

	// ErrMalformedOutput means the model response is not valid JSON.
	ErrMalformedOutput = errors.New("model output is not valid JSON")

	// ErrWrongShape means the model response is valid JSON but does not match
	// the declared question type's shape.
	ErrWrongShape = errors.New("model output does not match question shape")
)

// ParseQuestionType validates a request tag against the closed set.
func ParseQuestionType(s string) (QuestionType, error) {
	switch QuestionType(s) {
	case QuestionTypeMCQ:
		return QuestionTypeMCQ, nil
	case QuestionTypeTrueFalse:
		return QuestionTypeTrueFalse, nil
	case QuestionTypeFillBlank:
		return QuestionTypeFillBlank, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, s)
}

// GenerateQuestions builds the prompt for the question type and issues exactly
// one completion call, returning the raw model text unparsed.
func GenerateQuestions(ctx context.Context, llm ai.LLM, assessment string, score, count int, qt QuestionType) (string, error) {
	if llm == nil {
		return "", ErrMissingLLM
	}

	prompt, err := BuildQuestionPrompt(qt, assessment, score, count)
	if err != nil {
		return "", err
	}
	return llm.Complete(ctx, prompt)
}

// BuildQuestionPrompt renders the fixed template for a question type. The
// difficulty instruction is derived inversely from the score: a low score
// asks for easier questions, a high score for harder ones.
func BuildQuestionPrompt(qt QuestionType, assessment string, score, count int) (string, error) {
	shape, err := questionShape(qt)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are a teacher who is generating questions for a user based on their assessment.
The user assessment is as follows:
%s

You need to generate %s questions for the user.

The user has scored %d out of 10. %s

Return the questions as a JSON list. You should generate %d questions.

Each question must have the following fields:

%s

No other text should be returned.`, assessment, qt, score, difficultyInstruction(score), count, shape), nil
}

func questionShape(qt QuestionType) (string, error) {
	switch qt {
	case QuestionTypeMCQ:
		return `"question" : "<question>",
"options" : ["<option>", ...],
"answer" : "<answer>"`, nil
	case QuestionTypeTrueFalse:
		return `"question" : "<question>",
"answer" : "True or False"`, nil
	case QuestionTypeFillBlank:
		return `"question" : "question should contain minimum of 1 blank space and maximum of 3 blank spaces",
"answer" : "answers should be a list of blank space answers in order of the question"`, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, qt)
}

func difficultyInstruction(score int) string {
	switch {
	case score <= 3:
		return "The assessment was hard on the user, so generate easy questions."
	case score >= 8:
		return "The assessment was easy on the user, so generate hard questions."
	default:
		return "Generate questions of moderate difficulty."
	}
}

// ParseQuestionSet validates raw model output against the declared type's
// shape. "Not JSON" and "valid JSON but wrong shape" are distinct error kinds.
func ParseQuestionSet(qt QuestionType, raw string) (interface{}, error) {
	data := []byte(stripCodeFence(raw))

	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	switch qt {
	case QuestionTypeMCQ:
		var items []models.MCQItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrongShape, err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: empty question list", ErrWrongShape)
		}
		for i, item := range items {
			if item.Question == "" || item.Answer == "" || len(item.Options) == 0 {
				return nil, fmt.Errorf("%w: question %d is missing fields", ErrWrongShape, i)
			}
		}
		return items, nil

	case QuestionTypeTrueFalse:
		var items []models.TrueFalseItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrongShape, err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: empty question list", ErrWrongShape)
		}
		for i, item := range items {
			if item.Question == "" {
				return nil, fmt.Errorf("%w: question %d is missing fields", ErrWrongShape, i)
			}
			if item.Answer != "True" && item.Answer != "False" {
				return nil, fmt.Errorf("%w: question %d answer %q is not True or False", ErrWrongShape, i, item.Answer)
			}
		}
		return items, nil

	case QuestionTypeFillBlank:
		var items []models.FillBlankItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrongShape, err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: empty question list", ErrWrongShape)
		}
		for i, item := range items {
			if item.Question == "" || len(item.Answer) == 0 {
				return nil, fmt.Errorf("%w: question %d is missing fields", ErrWrongShape, i)
			}
		}
		return items, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, qt)
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// routinely wrap JSON in despite instructions.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
