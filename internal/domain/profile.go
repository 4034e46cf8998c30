package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProviderFamily identifies the backend vendor a profile binds to.
type ProviderFamily string

// Supported provider families.
const (
	ProviderFamilyOpenAI    ProviderFamily = "openai"
	ProviderFamilyAnthropic ProviderFamily = "anthropic"
	ProviderFamilyGemini    ProviderFamily = "gemini"
)

// Profile-specific validation errors
var (
	// ErrProfileModelEmpty is returned when a profile has no model identifier.
	ErrProfileModelEmpty = errors.New("provider profile model cannot be empty")

	// ErrProfileInvalidFamily is returned when the provider family is unknown.
	ErrProfileInvalidFamily = errors.New("invalid provider family")

	// ErrProfileRoleConflict is returned when a profile is marked as both
	// primary and fallback.
	ErrProfileRoleConflict = errors.New("provider profile cannot be both primary and fallback")

	// ErrProfileNegativeRate is returned when a cost rate is negative.
	ErrProfileNegativeRate = errors.New("provider profile cost rates cannot be negative")
)

// Validate checks that the provider family is one of the supported values.
func (f ProviderFamily) Validate() error {
	switch f {
	case ProviderFamilyOpenAI, ProviderFamilyAnthropic, ProviderFamilyGemini:
		return nil
	default:
		return ErrProfileInvalidFamily
	}
}

// SamplingParams carries the per-request generation knobs forwarded to a
// provider adapter.
type SamplingParams struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"top_p"`
	MaxOutputTokens int     `json:"max_output_tokens"`
}

// ProviderProfile is one configured text-generation backend: a vendor
// family, a concrete model, and the pricing used to convert token usage
// into monetary cost.
//
// Across all active profiles at most one may be primary and at most one
// fallback, and a single profile never holds both roles. Profiles are
// authored by an external admin surface; the pipeline reads them once per
// session and treats the result as an immutable snapshot so a concurrent
// admin edit cannot produce mid-session inconsistency.
type ProviderProfile struct {
	ID              uuid.UUID      `json:"id"`
	Family          ProviderFamily `json:"family"`
	Model           string         `json:"model"`
	InputRatePer1K  float64        `json:"input_rate_per_1k"`
	OutputRatePer1K float64        `json:"output_rate_per_1k"`
	Sampling        SamplingParams `json:"sampling"`
	Active          bool           `json:"active"`
	IsPrimary       bool           `json:"is_primary"`
	IsFallback      bool           `json:"is_fallback"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewProviderProfile creates a new ProviderProfile for the given family and
// model. It generates a new UUID and sets timestamps. Returns an error if
// validation fails.
func NewProviderProfile(family ProviderFamily, model string) (*ProviderProfile, error) {
	profile := &ProviderProfile{
		ID:        uuid.New(),
		Family:    family,
		Model:     model,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the ProviderProfile has valid data.
func (p *ProviderProfile) Validate() error {
	if err := p.Family.Validate(); err != nil {
		return err
	}

	if p.Model == "" {
		return ErrProfileModelEmpty
	}

	if p.IsPrimary && p.IsFallback {
		return ErrProfileRoleConflict
	}

	if p.InputRatePer1K < 0 || p.OutputRatePer1K < 0 {
		return ErrProfileNegativeRate
	}

	return nil
}

// CostFor converts token usage into monetary cost using this profile's
// per-thousand-token rates.
func (p *ProviderProfile) CostFor(usage TokenUsage) float64 {
	inputCost := float64(usage.InputTokens) / 1000 * p.InputRatePer1K
	outputCost := float64(usage.OutputTokens) / 1000 * p.OutputRatePer1K
	return inputCost + outputCost
}
