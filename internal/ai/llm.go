package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"quizgen-platform/internal/config"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

// LLM is the single capability the question pipeline needs from a model
// provider: one prompt in, raw completion text out.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client wraps a provider-specific model with a circuit breaker and a rate
// limiter so a flapping provider degrades instead of cascading.
type Client struct {
	inner       LLM
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	model       string
	closer      func() error
}

// NewClient builds the completion client for the configured provider.
func NewClient(cfg *config.Config) (*Client, error) {
	var inner LLM
	var closer func() error

	switch cfg.LLMProvider {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("missing OPENAI_API_KEY for LLM provider openai")
		}
		inner = &openAIModel{
			client: openai.NewClient(cfg.OpenAIAPIKey),
			model:  cfg.LLMModel,
		}
	case "google":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("missing GEMINI_API_KEY for LLM provider google")
		}
		client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, err
		}
		inner = &googleModel{client: client, model: cfg.LLMModel}
		closer = client.Close
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "LLM",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	// Conservative default: 10 requests/minute with a small burst
	rateLimiter := rate.NewLimiter(rate.Limit(10.0/60.0), 2)

	return &Client{
		inner:       inner,
		breaker:     breaker,
		rateLimiter: rateLimiter,
		model:       cfg.LLMModel,
		closer:      closer,
	}, nil
}

// Complete issues one completion request and returns the raw model text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("llm-client")
	ctx, span := tracer.Start(ctx, "llm.complete")
	defer span.End()

	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.prompt_chars", len(prompt)),
	)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("llm.rate_limited", true))
		return "", err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.Complete(ctx, prompt)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			span.SetAttributes(attribute.Bool("llm.circuit_breaker_open", true))
			return "", fmt.Errorf("llm provider unavailable: %w", err)
		}
		span.SetAttributes(attribute.Bool("llm.error", true))
		return "", err
	}

	text := result.(string)
	span.SetAttributes(attribute.Int("llm.response_chars", len(text)))
	return text, nil
}

// Close releases the underlying provider client, if it holds one.
func (c *Client) Close() error {
	if c.closer != nil {
		return c.closer()
	}
	return nil
}

type openAIModel struct {
	client *openai.Client
	model  string
}

func (m *openAIModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

type googleModel struct {
	client *genai.Client
	model  string
}

func (m *googleModel) Complete(ctx context.Context, prompt string) (string, error) {
	model := m.client.GenerativeModel(m.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no completion returned")
	}

	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			text += string(textPart)
		}
	}
	return text, nil
}
