package mocks

import (
	"context"
	"sync"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	// NameValue is returned by Name
	NameValue string

	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt string, params domain.SamplingParams) (*generation.Result, error)

	// Default response values used when GenerateFn is nil
	Result *generation.Result
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Prompts contains all prompts passed to Generate calls
		Prompts []string

		// Params contains all sampling params passed to Generate calls
		Params []domain.SamplingParams
	}
}

// Name implements the generation.Provider interface
func (m *MockProvider) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

// Generate implements the generation.Provider interface
func (m *MockProvider) Generate(
	ctx context.Context,
	prompt string,
	params domain.SamplingParams,
) (*generation.Result, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Prompts = append(m.GenerateCalls.Prompts, prompt)
	m.GenerateCalls.Params = append(m.GenerateCalls.Params, params)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt, params)
	}

	return m.Result, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// NewMockProviderWithText creates a MockProvider that always returns the
// given text with the given token usage.
func NewMockProviderWithText(name, text string, usage domain.TokenUsage) *MockProvider {
	return &MockProvider{
		NameValue: name,
		Result:    &generation.Result{Text: text, Usage: usage},
	}
}

// NewMockProviderWithError creates a MockProvider that always fails.
func NewMockProviderWithError(name string, err error) *MockProvider {
	return &MockProvider{
		NameValue: name,
		Err:       err,
	}
}

// MockProviderFactory implements generation.ProviderFactory for testing
type MockProviderFactory struct {
	// NewProviderFn allows test cases to mock provider construction
	NewProviderFn func(ctx context.Context, profile *domain.ProviderProfile, apiKey string) (generation.Provider, error)

	// Providers maps provider families to the mocks returned for them,
	// used when NewProviderFn is nil
	Providers map[domain.ProviderFamily]generation.Provider

	// Err is returned when set and NewProviderFn is nil
	Err error
}

// NewProvider implements the generation.ProviderFactory interface
func (m *MockProviderFactory) NewProvider(
	ctx context.Context,
	profile *domain.ProviderProfile,
	apiKey string,
) (generation.Provider, error) {
	if m.NewProviderFn != nil {
		return m.NewProviderFn(ctx, profile, apiKey)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if p, ok := m.Providers[profile.Family]; ok {
		return p, nil
	}

	return &MockProvider{NameValue: string(profile.Family)}, nil
}
