package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// ProfileSource supplies the active provider profiles. Implementations
// read from shared configuration; the gateway copies the result into its
// own snapshot so concurrent admin edits never affect a running session.
type ProfileSource interface {
	// GetActivePrimary returns the single active primary profile, or an
	// error wrapping ErrNoActiveProfile when none is configured.
	GetActivePrimary(ctx context.Context) (*domain.ProviderProfile, error)

	// GetActiveFallback returns the single active fallback profile, or
	// (nil, nil) when no fallback is configured.
	GetActiveFallback(ctx context.Context) (*domain.ProviderProfile, error)
}

// GenerateOptions carries per-call overrides for a gateway generation.
type GenerateOptions struct {
	// Sampling overrides the serving profile's sampling parameters when
	// non-nil.
	Sampling *domain.SamplingParams
}

// GenerateResult is the outcome of one gateway call, attributed to the
// profile that actually served it.
type GenerateResult struct {
	Content        string
	Usage          domain.TokenUsage
	EstimatedUsage bool
	Cost           float64
	ProviderUsed   string
	ModelUsed      string
}

// boundProvider couples a profile snapshot with its constructed adapter.
type boundProvider struct {
	profile *domain.ProviderProfile
	adapter Provider
}

// Gateway selects a primary and optional fallback provider for one
// generation session and performs single-retry failover between them.
//
// A Gateway is session-scoped: Initialize snapshots the profile selection
// once, and every subsequent call uses that immutable snapshot. Sessions
// running concurrently each hold their own Gateway, so no locking is
// needed.
type Gateway struct {
	profiles ProfileSource
	creds    CredentialSource
	factory  ProviderFactory
	logger   *slog.Logger

	primary  *boundProvider
	fallback *boundProvider
}

// NewGateway creates a Gateway with the given collaborators. Call
// Initialize before GenerateContent.
func NewGateway(
	profiles ProfileSource,
	creds CredentialSource,
	factory ProviderFactory,
	logger *slog.Logger,
) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		profiles: profiles,
		creds:    creds,
		factory:  factory,
		logger:   logger.With(slog.String("component", "provider_gateway")),
	}
}

// Initialize loads the active primary and optional fallback profiles and
// binds each to a concrete adapter selected by family. A missing primary
// profile is a configuration error; a missing fallback simply disables
// failover.
func (g *Gateway) Initialize(ctx context.Context) error {
	primary, err := g.profiles.GetActivePrimary(ctx)
	if err != nil {
		return fmt.Errorf("loading primary profile: %w", err)
	}

	g.primary, err = g.bind(ctx, primary)
	if err != nil {
		return fmt.Errorf("binding primary provider: %w", err)
	}

	fallback, err := g.profiles.GetActiveFallback(ctx)
	if err != nil {
		return fmt.Errorf("loading fallback profile: %w", err)
	}

	if fallback != nil {
		g.fallback, err = g.bind(ctx, fallback)
		if err != nil {
			return fmt.Errorf("binding fallback provider: %w", err)
		}
	}

	g.logger.Debug("gateway initialized",
		slog.String("primary_family", string(primary.Family)),
		slog.String("primary_model", primary.Model),
		slog.Bool("fallback_configured", g.fallback != nil))

	return nil
}

func (g *Gateway) bind(ctx context.Context, profile *domain.ProviderProfile) (*boundProvider, error) {
	// Copy the profile so later edits to the source never reach this
	// session.
	snapshot := *profile

	apiKey, err := g.creds.APIKeyFor(ctx, &snapshot)
	if err != nil {
		return nil, err
	}

	adapter, err := g.factory.NewProvider(ctx, &snapshot, apiKey)
	if err != nil {
		return nil, err
	}

	return &boundProvider{profile: &snapshot, adapter: adapter}, nil
}

// GenerateContent submits a prompt through the primary provider, retrying
// once against the fallback on any adapter-level failure. When both legs
// fail (or the primary fails with no fallback configured) the returned
// error wraps ErrAllProvidersFailed and names every cause.
//
// Cost is computed from the profile that actually served the request:
// (inputTokens/1000)*inputRate + (outputTokens/1000)*outputRate.
func (g *Gateway) GenerateContent(
	ctx context.Context,
	prompt string,
	opts GenerateOptions,
) (*GenerateResult, error) {
	if g.primary == nil {
		return nil, ErrNotInitialized
	}

	result, primaryErr := g.generateWith(ctx, g.primary, prompt, opts)
	if primaryErr == nil {
		return result, nil
	}

	g.logger.Warn("primary provider failed",
		slog.String("provider", string(g.primary.profile.Family)),
		slog.String("error", primaryErr.Error()),
		slog.Bool("fallback_configured", g.fallback != nil))

	if g.fallback == nil {
		return nil, fmt.Errorf("%w: primary %s: %v; no fallback configured",
			ErrAllProvidersFailed, g.primary.profile.Family, primaryErr)
	}

	result, fallbackErr := g.generateWith(ctx, g.fallback, prompt, opts)
	if fallbackErr == nil {
		g.logger.Info("fallback provider served request",
			slog.String("provider", string(g.fallback.profile.Family)),
			slog.String("model", g.fallback.profile.Model))
		return result, nil
	}

	return nil, fmt.Errorf("%w: primary %s: %v; fallback %s: %v",
		ErrAllProvidersFailed,
		g.primary.profile.Family, primaryErr,
		g.fallback.profile.Family, fallbackErr)
}

func (g *Gateway) generateWith(
	ctx context.Context,
	bound *boundProvider,
	prompt string,
	opts GenerateOptions,
) (*GenerateResult, error) {
	params := bound.profile.Sampling
	if opts.Sampling != nil {
		params = *opts.Sampling
	}

	res, err := bound.adapter.Generate(ctx, prompt, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	if res.Text == "" {
		return nil, ErrEmptyResponse
	}

	return &GenerateResult{
		Content:        res.Text,
		Usage:          res.Usage,
		EstimatedUsage: res.EstimatedUsage,
		Cost:           bound.profile.CostFor(res.Usage),
		ProviderUsed:   string(bound.profile.Family),
		ModelUsed:      bound.profile.Model,
	}, nil
}
