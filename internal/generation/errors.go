package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when an adapter or gateway configuration
	// is invalid (missing credential, model, or profile data).
	ErrInvalidConfig = errors.New("invalid generation configuration")

	// ErrNoActiveProfile is returned when no active primary provider
	// profile is configured. This is a configuration error and surfaces
	// before any provider call.
	ErrNoActiveProfile = errors.New("no active primary provider profile configured")

	// ErrProviderFailure is returned when a single adapter call fails
	// (auth, quota, malformed response).
	ErrProviderFailure = errors.New("provider call failed")

	// ErrAllProvidersFailed is returned when the primary call failed and
	// either no fallback is configured or the fallback failed as well. The
	// wrapped error chain names both causes.
	ErrAllProvidersFailed = errors.New("all configured providers failed")

	// ErrEmptyResponse is returned when a provider responds without any
	// generated text.
	ErrEmptyResponse = errors.New("provider returned empty response")

	// ErrNotInitialized is returned when GenerateContent is called before
	// Initialize has bound the session's provider snapshot.
	ErrNotInitialized = errors.New("gateway not initialized")
)
