package generation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/mocks"
)

// staticCreds resolves every profile to a fixed test credential.
type staticCreds struct{}

func (staticCreds) APIKeyFor(context.Context, *domain.ProviderProfile) (string, error) {
	return "test-key", nil
}

func primaryProfile() *domain.ProviderProfile {
	return &domain.ProviderProfile{
		Family:          domain.ProviderFamilyGemini,
		Model:           "gemini-2.0-flash",
		InputRatePer1K:  0.10,
		OutputRatePer1K: 0.40,
		Active:          true,
		IsPrimary:       true,
	}
}

func fallbackProfile() *domain.ProviderProfile {
	return &domain.ProviderProfile{
		Family:          domain.ProviderFamilyOpenAI,
		Model:           "gpt-4o-mini",
		InputRatePer1K:  0.15,
		OutputRatePer1K: 0.60,
		Active:          true,
		IsFallback:      true,
	}
}

func newGateway(
	t *testing.T,
	profiles *mocks.MockProfileStore,
	providers map[domain.ProviderFamily]generation.Provider,
) *generation.Gateway {
	t.Helper()

	factory := &mocks.MockProviderFactory{Providers: providers}
	gw := generation.NewGateway(profiles, staticCreds{}, factory, nil)
	require.NoError(t, gw.Initialize(context.Background()))
	return gw
}

func TestGatewayInitialize(t *testing.T) {
	t.Parallel()

	t.Run("missing primary profile is a configuration error", func(t *testing.T) {
		t.Parallel()

		profiles := &mocks.MockProfileStore{
			GetActivePrimaryFn: func(ctx context.Context) (*domain.ProviderProfile, error) {
				return nil, generation.ErrNoActiveProfile
			},
		}

		gw := generation.NewGateway(profiles, staticCreds{}, &mocks.MockProviderFactory{}, nil)
		err := gw.Initialize(context.Background())

		assert.ErrorIs(t, err, generation.ErrNoActiveProfile)
	})

	t.Run("missing fallback disables failover without error", func(t *testing.T) {
		t.Parallel()

		profiles := &mocks.MockProfileStore{Primary: primaryProfile()}
		gw := generation.NewGateway(profiles, staticCreds{}, &mocks.MockProviderFactory{}, nil)

		assert.NoError(t, gw.Initialize(context.Background()))
	})

	t.Run("credential failure surfaces on initialize", func(t *testing.T) {
		t.Parallel()

		profiles := &mocks.MockProfileStore{Primary: primaryProfile()}
		gw := generation.NewGateway(profiles, generation.EnvCredentialSource{}, &mocks.MockProviderFactory{}, nil)

		err := gw.Initialize(context.Background())
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestGatewayGenerateContent(t *testing.T) {
	t.Parallel()

	t.Run("primary serves with attributed cost", func(t *testing.T) {
		t.Parallel()

		usage := domain.TokenUsage{InputTokens: 2000, OutputTokens: 500, TotalTokens: 2500}
		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: mocks.NewMockProviderWithText("gemini", "generated prose", usage),
		}

		gw := newGateway(t, &mocks.MockProfileStore{Primary: primaryProfile()}, providers)
		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})

		require.NoError(t, err)
		assert.Equal(t, "generated prose", res.Content)
		assert.Equal(t, usage, res.Usage)
		assert.False(t, res.EstimatedUsage)
		assert.Equal(t, "gemini", res.ProviderUsed)
		assert.Equal(t, "gemini-2.0-flash", res.ModelUsed)

		// (2000/1000)*0.10 + (500/1000)*0.40
		assert.InDelta(t, 0.40, res.Cost, 1e-9)
	})

	t.Run("fallback serves when primary fails", func(t *testing.T) {
		t.Parallel()

		usage := domain.TokenUsage{InputTokens: 1000, OutputTokens: 1000, TotalTokens: 2000}
		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: mocks.NewMockProviderWithError("gemini", errors.New("quota exhausted")),
			domain.ProviderFamilyOpenAI: mocks.NewMockProviderWithText("openai", "rescued", usage),
		}

		profiles := &mocks.MockProfileStore{Primary: primaryProfile(), Fallback: fallbackProfile()}
		gw := newGateway(t, profiles, providers)

		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})

		require.NoError(t, err)
		assert.Equal(t, "rescued", res.Content)

		// Attribution and cost follow the profile that served, not the one
		// that was asked first.
		assert.Equal(t, "openai", res.ProviderUsed)
		assert.Equal(t, "gpt-4o-mini", res.ModelUsed)
		assert.InDelta(t, 0.75, res.Cost, 1e-9)
	})

	t.Run("primary failure with no fallback", func(t *testing.T) {
		t.Parallel()

		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: mocks.NewMockProviderWithError("gemini", errors.New("boom")),
		}

		gw := newGateway(t, &mocks.MockProfileStore{Primary: primaryProfile()}, providers)
		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})

		assert.Nil(t, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrAllProvidersFailed)
		assert.Contains(t, err.Error(), "no fallback configured")
		assert.Contains(t, err.Error(), "gemini")
	})

	t.Run("both legs failing names both causes", func(t *testing.T) {
		t.Parallel()

		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: mocks.NewMockProviderWithError("gemini", errors.New("rate limited")),
			domain.ProviderFamilyOpenAI: mocks.NewMockProviderWithError("openai", errors.New("bad auth")),
		}

		profiles := &mocks.MockProfileStore{Primary: primaryProfile(), Fallback: fallbackProfile()}
		gw := newGateway(t, profiles, providers)

		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})

		assert.Nil(t, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrAllProvidersFailed)
		assert.Contains(t, err.Error(), "primary gemini")
		assert.Contains(t, err.Error(), "rate limited")
		assert.Contains(t, err.Error(), "fallback openai")
		assert.Contains(t, err.Error(), "bad auth")
	})

	t.Run("empty response triggers failover", func(t *testing.T) {
		t.Parallel()

		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: mocks.NewMockProviderWithText("gemini", "", domain.TokenUsage{}),
			domain.ProviderFamilyOpenAI: mocks.NewMockProviderWithText("openai", "fallback text", domain.TokenUsage{}),
		}

		profiles := &mocks.MockProfileStore{Primary: primaryProfile(), Fallback: fallbackProfile()}
		gw := newGateway(t, profiles, providers)

		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})

		require.NoError(t, err)
		assert.Equal(t, "fallback text", res.Content)
		assert.Equal(t, "openai", res.ProviderUsed)
	})

	t.Run("uninitialized gateway refuses calls", func(t *testing.T) {
		t.Parallel()

		gw := generation.NewGateway(&mocks.MockProfileStore{}, staticCreds{}, &mocks.MockProviderFactory{}, nil)
		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})

		assert.Nil(t, res)
		assert.ErrorIs(t, err, generation.ErrNotInitialized)
	})

	t.Run("sampling override reaches the adapter", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewMockProviderWithText("gemini", "text", domain.TokenUsage{})
		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: provider,
		}

		profile := primaryProfile()
		profile.Sampling = domain.SamplingParams{Temperature: 0.2, MaxOutputTokens: 512}

		gw := newGateway(t, &mocks.MockProfileStore{Primary: profile}, providers)

		override := &domain.SamplingParams{Temperature: 0.9, MaxOutputTokens: 2048}
		_, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{Sampling: override})
		require.NoError(t, err)

		require.Len(t, provider.GenerateCalls.Params, 1)
		assert.Equal(t, *override, provider.GenerateCalls.Params[0])

		// Without an override the profile's own sampling applies.
		_, err = gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})
		require.NoError(t, err)
		assert.Equal(t, profile.Sampling, provider.GenerateCalls.Params[1])
	})

	t.Run("session snapshot ignores later profile edits", func(t *testing.T) {
		t.Parallel()

		profile := primaryProfile()
		providers := map[domain.ProviderFamily]generation.Provider{
			domain.ProviderFamilyGemini: mocks.NewMockProviderWithText("gemini", "text",
				domain.TokenUsage{InputTokens: 1000, OutputTokens: 0, TotalTokens: 1000}),
		}

		gw := newGateway(t, &mocks.MockProfileStore{Primary: profile}, providers)

		// Mutating the source profile after Initialize must not change the
		// session's cost accounting.
		profile.InputRatePer1K = 99.0

		res, err := gw.GenerateContent(context.Background(), "prompt", generation.GenerateOptions{})
		require.NoError(t, err)
		assert.InDelta(t, 0.10, res.Cost, 1e-9)
	})
}
