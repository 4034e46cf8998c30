// Package platform wires provider profiles to the concrete adapter
// implementations living in its subpackages.
package platform

import (
	"context"
	"fmt"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/platform/anthropic"
	"github.com/draftforge/draftforge-api/internal/platform/gemini"
	"github.com/draftforge/draftforge-api/internal/platform/openai"
)

// ProviderFactory constructs adapters by provider family. It implements
// generation.ProviderFactory.
type ProviderFactory struct{}

// NewProviderFactory creates a ProviderFactory.
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// NewProvider implements generation.ProviderFactory.
func (f *ProviderFactory) NewProvider(
	ctx context.Context,
	profile *domain.ProviderProfile,
	apiKey string,
) (generation.Provider, error) {
	switch profile.Family {
	case domain.ProviderFamilyOpenAI:
		return openai.NewAdapter(apiKey, profile.Model)
	case domain.ProviderFamilyAnthropic:
		return anthropic.NewAdapter(apiKey, profile.Model)
	case domain.ProviderFamilyGemini:
		return gemini.NewAdapter(ctx, apiKey, profile.Model)
	default:
		return nil, fmt.Errorf("%w: unsupported provider family %q",
			generation.ErrInvalidConfig, profile.Family)
	}
}
