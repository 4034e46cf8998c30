package mocks

import (
	"context"
	"sync"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// MockContentGenerator implements the orchestrator's gateway interface for
// testing. By default every call succeeds with canned text and usage.
type MockContentGenerator struct {
	// GenerateContentFn allows test cases to mock the gateway behavior
	GenerateContentFn func(ctx context.Context, prompt string, opts generation.GenerateOptions) (*generation.GenerateResult, error)

	// Default response values used when GenerateContentFn is nil
	Text string
	Err  error

	// Call tracking for verification
	Calls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateContent was called
		Count int

		// Prompts contains all prompts passed to GenerateContent calls
		Prompts []string
	}
}

// GenerateContent implements the pipeline.ContentGenerator interface
func (m *MockContentGenerator) GenerateContent(
	ctx context.Context,
	prompt string,
	opts generation.GenerateOptions,
) (*generation.GenerateResult, error) {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.Prompts = append(m.Calls.Prompts, prompt)
	m.Calls.mu.Unlock()

	if m.GenerateContentFn != nil {
		return m.GenerateContentFn(ctx, prompt, opts)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	text := m.Text
	if text == "" {
		text = "generated text"
	}

	return &generation.GenerateResult{
		Content: text,
		Usage:   domain.TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	}, nil
}

// CallCount returns how many times GenerateContent was called.
func (m *MockContentGenerator) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Count
}

// Prompts returns a copy of the prompts observed so far.
func (m *MockContentGenerator) Prompts() []string {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	out := make([]string, len(m.Calls.Prompts))
	copy(out, m.Calls.Prompts)
	return out
}
