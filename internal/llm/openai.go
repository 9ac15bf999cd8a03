package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = "You are an educational resource curator for university computer science and mathematics courses."

// OpenAIClient implements Client on the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	config *Config
	system string
}

// NewOpenAIClient creates an OpenAI client. The base URL can be overridden
// with NewOpenAIClientWithBaseURL for compatible gateways and tests.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithBaseURL(config, apiKey, "")
}

// NewOpenAIClientWithBaseURL creates an OpenAI client against baseURL.
func NewOpenAIClientWithBaseURL(config *Config, apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		config: config,
		system: openAISystemPrompt,
	}, nil
}

// WithSystemPrompt replaces the system message sent with every request.
func (c *OpenAIClient) WithSystemPrompt(system string) *OpenAIClient {
	out := *c
	out.system = system
	return &out
}

func (c *OpenAIClient) request(prompt string, tier ModelTier) (openai.ChatCompletionRequest, error) {
	model := c.config.GetModel(tier)
	if model == "" {
		return openai.ChatCompletionRequest{}, fmt.Errorf("no model configured for tier %s", tier)
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.config.Temperature,
	}
	if c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}
	return req, nil
}

func (c *OpenAIClient) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai returned empty content")
	}
	return content, nil
}

// GenerateContent generates free text using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	req, err := c.request(prompt, tier)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, req)
}

// GenerateJSON requests a JSON object response. The prompt must ask for an
// object, not a bare array.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	req, err := c.request(prompt, tier)
	if err != nil {
		return "", err
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}

	text, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no long-lived resources.
func (c *OpenAIClient) Close() error { return nil }
