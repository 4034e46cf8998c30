package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/store"
)

// ProfileStore implements the store.ProfileStore interface using a
// PostgreSQL database as the storage backend. The one-primary /
// one-fallback invariant across active profiles is enforced by partial
// unique indexes, so a role conflict surfaces as a unique violation.
type ProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProfileStore creates a new PostgreSQL implementation of the
// store.ProfileStore interface. If logger is nil, a default logger will
// be used.
func NewProfileStore(db store.DBTX, logger *slog.Logger) *ProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure ProfileStore implements store.ProfileStore
var _ store.ProfileStore = (*ProfileStore)(nil)

const profileColumns = `id, family, model, input_rate_per_1k, output_rate_per_1k,
	sampling, active, is_primary, is_fallback, created_at, updated_at`

// GetActivePrimary implements store.ProfileStore.GetActivePrimary.
func (s *ProfileStore) GetActivePrimary(ctx context.Context) (*domain.ProviderProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM provider_profiles
		WHERE active = TRUE AND is_primary = TRUE
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active primary profile", store.ErrProfileNotFound)
		}
		return nil, store.NewStoreError("profile", "get", "query failed", err)
	}

	return profile, nil
}

// GetActiveFallback implements store.ProfileStore.GetActiveFallback. A
// missing fallback is not an error: the gateway runs single-provider in
// that case.
func (s *ProfileStore) GetActiveFallback(ctx context.Context) (*domain.ProviderProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM provider_profiles
		WHERE active = TRUE AND is_fallback = TRUE
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, store.NewStoreError("profile", "get", "query failed", err)
	}

	return profile, nil
}

// GetByID implements store.ProfileStore.GetByID.
func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM provider_profiles
		WHERE id = $1
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", store.ErrProfileNotFound, id)
		}
		return nil, store.NewStoreError("profile", "get", "query failed", err)
	}

	return profile, nil
}

// Create implements store.ProfileStore.Create.
func (s *ProfileStore) Create(ctx context.Context, profile *domain.ProviderProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	sampling, err := json.Marshal(profile.Sampling)
	if err != nil {
		return fmt.Errorf("failed to marshal sampling params: %w", err)
	}

	query := `
		INSERT INTO provider_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		profile.ID, profile.Family, profile.Model,
		profile.InputRatePer1K, profile.OutputRatePer1K, sampling,
		profile.Active, profile.IsPrimary, profile.IsFallback,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return fmt.Errorf("%w: %v", store.ErrProfileRoleTaken, pgErr.ConstraintName)
		}
		return store.NewStoreError("profile", "create", "insert failed", err)
	}

	return nil
}

// Update implements store.ProfileStore.Update.
func (s *ProfileStore) Update(ctx context.Context, profile *domain.ProviderProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	sampling, err := json.Marshal(profile.Sampling)
	if err != nil {
		return fmt.Errorf("failed to marshal sampling params: %w", err)
	}

	query := `
		UPDATE provider_profiles
		SET family = $2, model = $3, input_rate_per_1k = $4, output_rate_per_1k = $5,
			sampling = $6, active = $7, is_primary = $8, is_fallback = $9, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		profile.ID, profile.Family, profile.Model,
		profile.InputRatePer1K, profile.OutputRatePer1K, sampling,
		profile.Active, profile.IsPrimary, profile.IsFallback,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return fmt.Errorf("%w: %v", store.ErrProfileRoleTaken, pgErr.ConstraintName)
		}
		return store.NewStoreError("profile", "update", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %s", store.ErrProfileNotFound, profile.ID)
	}

	return nil
}

func scanProfile(row rowScanner) (*domain.ProviderProfile, error) {
	var (
		profile  domain.ProviderProfile
		sampling []byte
	)

	err := row.Scan(
		&profile.ID, &profile.Family, &profile.Model,
		&profile.InputRatePer1K, &profile.OutputRatePer1K, &sampling,
		&profile.Active, &profile.IsPrimary, &profile.IsFallback,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(sampling) > 0 {
		if err := json.Unmarshal(sampling, &profile.Sampling); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sampling params: %w", err)
		}
	}

	return &profile, nil
}
