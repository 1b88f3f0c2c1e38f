package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is the default chat completion model.
	DefaultModel = "gpt-3.5-turbo"
	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 30 * time.Second
)

// OpenAIGenerator answers questions through the OpenAI chat completion API.
// One call per question, deterministic settings, no retries.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator builds the generator. A missing API key is not checked
// here; it surfaces as an auth failure on the first completion call.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration) *OpenAIGenerator {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Generate sends the assembled knowledge and the question to the completion
// API and returns the trimmed answer. An empty knowledge string is fine; the
// model is instructed to always say something.
func (g *OpenAIGenerator) Generate(ctx context.Context, question, knowledge string) (string, error) {
	systemPrompt := "You are a cheery and helpful AI customer-support agent. " +
		"Given this piece of dialog with another customer: " + knowledge +
		"\nIf you cannot determine the answer from the given information or aren't " +
		"confident in the answer, tell me you don't know and have to check on " +
		"the answer but always tell me something"

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: question,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
