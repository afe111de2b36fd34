package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAgentAssessPromptsWithAssessment(t *testing.T) {
	llm := &fakeLLM{response: "7"}
	agent := NewAgent(llm)

	score, err := agent.Assess(context.Background(), "the user explained recursion clearly")
	if err != nil {
		t.Fatalf("assess error: %v", err)
	}
	if score != "7" {
		t.Fatalf("unexpected score %q", score)
	}
	if llm.calls != 1 {
		t.Fatalf("expected one completion call, got %d", llm.calls)
	}
	if !strings.Contains(llm.prompts[0], "the user explained recursion clearly") {
		t.Fatal("prompt does not include the assessment text")
	}
	if !strings.Contains(llm.prompts[0], "scale of 1 to 10") {
		t.Fatal("prompt does not ask for a 1-10 score")
	}
}

func TestAgentAssessMissingLLM(t *testing.T) {
	agent := NewAgent(nil)
	if _, err := agent.Assess(context.Background(), "text"); !errors.Is(err, ErrMissingLLM) {
		t.Fatalf("expected ErrMissingLLM, got %v", err)
	}
}

func TestAgentGenerateUnsupportedType(t *testing.T) {
	agent := NewAgent(&fakeLLM{response: "[]"})
	_, err := agent.Generate(context.Background(), "text", 5, 2, QuestionType("ESSAY"))
	if !errors.Is(err, ErrUnsupportedQuestionType) {
		t.Fatalf("expected ErrUnsupportedQuestionType, got %v", err)
	}
}

func TestAgentGenerateDispatches(t *testing.T) {
	llm := &fakeLLM{response: `[{"question":"q","answer":"True"}]`}
	agent := NewAgent(llm)

	raw, err := agent.Generate(context.Background(), "text", 5, 2, QuestionTypeTrueFalse)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if raw != llm.response {
		t.Fatalf("raw output was altered: %q", raw)
	}
	if !strings.Contains(llm.prompts[0], "TRUE_FALSE") {
		t.Fatal("prompt does not name the question type")
	}
}
