// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent and DRY testing across the
// codebase. Instead of defining inline mocks in individual test files,
// these standardized mock implementations can be reused.
//
// Each mock follows the same pattern: a struct with function fields for
// each interface method, plus default response values used when no
// function is set.
//
// Usage:
//
//	import "github.com/draftforge/draftforge-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    provider := &mocks.MockProvider{
//	        GenerateFn: func(ctx context.Context, prompt string, params domain.SamplingParams) (*generation.Result, error) {
//	            return &generation.Result{Text: "mocked"}, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
