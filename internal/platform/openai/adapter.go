// Package openai implements the generation.Provider interface using the
// official openai-go SDK (chat completions).
package openai

import (
	"context"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// Adapter wraps an OpenAI chat-completions client behind the uniform
// provider interface. OpenAI reports exact token usage, so results are
// never marked as estimated.
type Adapter struct {
	client openaisdk.Client
	model  string
}

// NewAdapter creates an OpenAI adapter for the given model.
func NewAdapter(apiKey, model string, opts ...option.RequestOption) (*Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	if model == "" {
		return nil, fmt.Errorf("%w: openai model cannot be empty", generation.ErrInvalidConfig)
	}

	clientOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &Adapter{
		client: openaisdk.NewClient(clientOpts...),
		model:  model,
	}, nil
}

// Name implements generation.Provider.
func (a *Adapter) Name() string {
	return string(domain.ProviderFamilyOpenAI)
}

// Generate implements generation.Provider.
func (a *Adapter) Generate(
	ctx context.Context,
	prompt string,
	params domain.SamplingParams,
) (*generation.Result, error) {
	req := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(a.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
	}

	if params.Temperature > 0 {
		req.Temperature = openaisdk.Float(params.Temperature)
	}
	if params.TopP > 0 {
		req.TopP = openaisdk.Float(params.TopP)
	}
	if params.MaxOutputTokens > 0 {
		req.MaxTokens = openaisdk.Int(int64(params.MaxOutputTokens))
	}

	resp, err := a.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", generation.ErrEmptyResponse)
	}

	text := resp.Choices[0].Message.Content

	return &generation.Result{
		Text: text,
		Usage: domain.TokenUsage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.PromptTokens + resp.Usage.CompletionTokens),
		},
	}, nil
}
