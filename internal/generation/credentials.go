package generation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// CredentialSource supplies the already-decrypted API credential for a
// provider profile. Encryption-at-rest and decryption live in an external
// secret-handling collaborator; the gateway only consumes the plaintext
// result.
type CredentialSource interface {
	// APIKeyFor returns the decrypted API key for the profile's family.
	APIKeyFor(ctx context.Context, profile *domain.ProviderProfile) (string, error)
}

// EnvCredentialSource resolves API keys from process environment variables
// named DRAFTFORGE_<FAMILY>_API_KEY.
type EnvCredentialSource struct{}

// APIKeyFor implements CredentialSource.
func (EnvCredentialSource) APIKeyFor(
	_ context.Context,
	profile *domain.ProviderProfile,
) (string, error) {
	name := "DRAFTFORGE_" + strings.ToUpper(string(profile.Family)) + "_API_KEY"

	key := os.Getenv(name)
	if key == "" {
		return "", fmt.Errorf("%w: environment variable %s not set", ErrInvalidConfig, name)
	}

	return key, nil
}
