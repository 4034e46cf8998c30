package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// ProfileStore defines the interface for provider profile persistence.
// The at-most-one-primary / at-most-one-fallback invariant across active
// profiles is enforced by the store (partial unique indexes in the
// postgres implementation).
type ProfileStore interface {
	// GetActivePrimary retrieves the single active primary profile.
	// Returns ErrProfileNotFound if none is configured.
	GetActivePrimary(ctx context.Context) (*domain.ProviderProfile, error)

	// GetActiveFallback retrieves the single active fallback profile, or
	// (nil, nil) when no fallback is configured.
	GetActiveFallback(ctx context.Context) (*domain.ProviderProfile, error)

	// GetByID retrieves a profile by its unique ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error)

	// Create saves a new profile to the store.
	// Returns ErrProfileRoleTaken if another active profile already holds
	// the requested primary or fallback role.
	Create(ctx context.Context, profile *domain.ProviderProfile) error

	// Update saves changes to an existing profile.
	// Returns ErrProfileNotFound if the profile does not exist and
	// ErrProfileRoleTaken on a role conflict.
	Update(ctx context.Context, profile *domain.ProviderProfile) error
}
