// Package gemini implements the generation.Provider interface using
// Google's genai SDK.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// Adapter wraps a Gemini client behind the uniform provider interface.
//
// Gemini reports usage metadata on most responses, but not all; when the
// metadata is absent the adapter falls back to the character-length
// estimate and marks the result accordingly.
type Adapter struct {
	client *genai.Client
	model  string
}

// NewAdapter creates a Gemini adapter for the given model.
func NewAdapter(ctx context.Context, apiKey, model string) (*Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if model == "" {
		return nil, fmt.Errorf("%w: gemini model cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Adapter{client: client, model: model}, nil
}

// Name implements generation.Provider.
func (a *Adapter) Name() string {
	return string(domain.ProviderFamilyGemini)
}

// Generate implements generation.Provider.
func (a *Adapter) Generate(
	ctx context.Context,
	prompt string,
	params domain.SamplingParams,
) (*generation.Result, error) {
	cfg := &genai.GenerateContentConfig{}
	if params.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(params.Temperature))
	}
	if params.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(params.TopP))
	}
	if params.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(params.MaxOutputTokens)
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no candidates in response", generation.ErrEmptyResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("gemini blocked content by safety filters")
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty candidate text", generation.ErrEmptyResponse)
	}

	result := &generation.Result{Text: text}

	if meta := resp.UsageMetadata; meta != nil {
		result.Usage = domain.TokenUsage{
			InputTokens:  int(meta.PromptTokenCount),
			OutputTokens: int(meta.CandidatesTokenCount),
		}
		result.Usage.TotalTokens = result.Usage.InputTokens + result.Usage.OutputTokens
	} else {
		// Usage metadata can be absent; estimate from character length so
		// cost accounting never fails outright.
		result.Usage = domain.TokenUsage{
			InputTokens:  generation.EstimateTokens(prompt),
			OutputTokens: generation.EstimateTokens(text),
		}
		result.Usage.TotalTokens = result.Usage.InputTokens + result.Usage.OutputTokens
		result.EstimatedUsage = true
	}

	return result, nil
}
