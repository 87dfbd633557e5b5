package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/qanunai/legal-advisor-backend/internal/conf"
)

// Client wraps the completion service. Every call sends one system and
// one user message and returns the raw text of the first choice.
type Client struct {
	api           *openai.Client
	model         string
	classifyModel string
}

// NewClient creates a completion client from configuration.
func NewClient(cfg *conf.OpenAIConfig) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	apiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:           openai.NewClientWithConfig(apiConfig),
		model:         cfg.Model,
		classifyModel: cfg.ClassifyModel,
	}
}

// Complete sends a grounded generation request using the main model.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.complete(ctx, c.model, systemPrompt, userPrompt, nil, 0)
}

// Classify sends a short deterministic classification request using the
// classify model. The response is expected to be a single token or word.
func (c *Client) Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	temperature := float32(0)
	return c.complete(ctx, c.classifyModel, systemPrompt, userPrompt, &temperature, 15)
}

// Chat answers a non-legal question with the reply language pinned via
// the system prompt.
func (c *Client) Chat(ctx context.Context, question, languageTag string) (string, error) {
	return c.Complete(ctx, chatSystemPrompt(languageTag), question)
}

func (c *Client) complete(ctx context.Context, model, systemPrompt, userPrompt string, temperature *float32, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if temperature != nil {
		req.Temperature = *temperature
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
