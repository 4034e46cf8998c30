package generation

import (
	"context"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Result is the normalized outcome of one provider call.
type Result struct {
	// Text is the generated output.
	Text string

	// Usage is the token accounting for the call. When the backend does
	// not report exact counts the adapter estimates them (see
	// EstimateTokens) and sets EstimatedUsage.
	Usage domain.TokenUsage

	// EstimatedUsage marks Usage as a character-length heuristic rather
	// than an exact count from the backend.
	EstimatedUsage bool
}

// Provider is the uniform interface over one text-generation backend.
// Implementations live in internal/platform and surface transport and auth
// failures as typed errors, never as silent empty responses.
type Provider interface {
	// Name returns the provider family identifier (e.g. "openai").
	Name() string

	// Generate submits a compiled prompt and returns the generated text
	// with normalized token usage.
	Generate(ctx context.Context, prompt string, params domain.SamplingParams) (*Result, error)
}

// ProviderFactory binds a provider profile to a concrete adapter. The
// gateway uses it to construct the session's primary and fallback
// providers from their profiles.
type ProviderFactory interface {
	// NewProvider constructs an adapter for the profile's family, using
	// the given already-decrypted API credential.
	NewProvider(ctx context.Context, profile *domain.ProviderProfile, apiKey string) (Provider, error)
}
