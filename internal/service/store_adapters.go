package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/prompt"
	"github.com/draftforge/draftforge-api/internal/store"
)

// profileSourceAdapter adapts store.ProfileStore to the gateway's
// ProfileSource boundary, translating store errors into the generation
// package's configuration errors.
type profileSourceAdapter struct {
	profiles store.ProfileStore
}

// GetActivePrimary implements generation.ProfileSource.
func (a profileSourceAdapter) GetActivePrimary(ctx context.Context) (*domain.ProviderProfile, error) {
	profile, err := a.profiles.GetActivePrimary(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, generation.ErrNoActiveProfile
		}
		return nil, err
	}
	return profile, nil
}

// GetActiveFallback implements generation.ProfileSource. A missing
// fallback is not an error; it simply disables failover.
func (a profileSourceAdapter) GetActiveFallback(ctx context.Context) (*domain.ProviderProfile, error) {
	profile, err := a.profiles.GetActiveFallback(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// templateSourceAdapter adapts store.TemplateStore to the pipeline's
// read-only prompt.TemplateStore boundary, translating the store's not
// found error into the prompt package's configuration error.
type templateSourceAdapter struct {
	templates store.TemplateStore
}

// GetByCode implements prompt.TemplateStore.
func (a templateSourceAdapter) GetByCode(ctx context.Context, code string) (*domain.PromptTemplate, error) {
	tmpl, err := a.templates.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", prompt.ErrTemplateNotFound, code)
		}
		return nil, err
	}
	return tmpl, nil
}
