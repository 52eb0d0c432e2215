package generator

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// openaiGenerator drives OpenAI-compatible endpoints through langchaingo.
type openaiGenerator struct {
	llm   *openai.LLM
	model string
}

func newOpenAIGenerator(cfg Config) (*openaiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &openaiGenerator{llm: llm, model: model}, nil
}

func (g *openaiGenerator) ModelVersion() string {
	return g.model
}

// Generate sends the prompt pair as a system+human message exchange.
func (g *openaiGenerator) Generate(ctx context.Context, systemPrompt, userMessage string, cfg ModelConfig) (string, error) {
	cfg = cfg.withDefaults(g.model)

	resp, err := g.llm.GenerateContent(ctx,
		chatMessages(systemPrompt, userMessage),
		llms.WithModel(cfg.Model),
		llms.WithMaxTokens(cfg.MaxTokens),
		llms.WithTemperature(cfg.Temperature),
	)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Content, nil
}

// chatMessages builds the system+human exchange for a chat completion.
func chatMessages(systemPrompt, userMessage string) []llms.MessageContent {
	return []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userMessage),
	}
}

var _ Generator = (*openaiGenerator)(nil)
