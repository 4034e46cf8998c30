// Package anthropic implements the generation.Provider interface using the
// official anthropic-sdk-go Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// defaultMaxTokens applies when a profile does not cap output; the
// Messages API requires an explicit limit.
const defaultMaxTokens = 4096

// Adapter wraps an Anthropic Messages client behind the uniform provider
// interface. Anthropic reports exact token usage, so results are never
// marked as estimated.
type Adapter struct {
	client anthropicsdk.Client
	model  string
}

// NewAdapter creates an Anthropic adapter for the given model.
func NewAdapter(apiKey, model string, opts ...option.RequestOption) (*Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	if model == "" {
		return nil, fmt.Errorf("%w: anthropic model cannot be empty", generation.ErrInvalidConfig)
	}

	clientOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &Adapter{
		client: anthropicsdk.NewClient(clientOpts...),
		model:  model,
	}, nil
}

// Name implements generation.Provider.
func (a *Adapter) Name() string {
	return string(domain.ProviderFamilyAnthropic)
}

// Generate implements generation.Provider.
func (a *Adapter) Generate(
	ctx context.Context,
	prompt string,
	params domain.SamplingParams,
) (*generation.Result, error) {
	maxTokens := params.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	req := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	}

	if params.Temperature > 0 {
		req.Temperature = anthropicsdk.Float(params.Temperature)
	}
	if params.TopP > 0 {
		req.TopP = anthropicsdk.Float(params.TopP)
	}

	msg, err := a.client.Messages.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("anthropic message: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := sb.String()
	if text == "" {
		return nil, fmt.Errorf("%w: no text blocks in response", generation.ErrEmptyResponse)
	}

	return &generation.Result{
		Text: text,
		Usage: domain.TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}
