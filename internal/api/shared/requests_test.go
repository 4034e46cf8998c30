package shared_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge-api/internal/api/shared"
)

type decodeTarget struct {
	Title string `json:"title" validate:"required"`
}

type selfValidating struct {
	err error
}

func (s *selfValidating) Validate() error { return s.err }

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a well-formed body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Stand Mixers"}`))

		var dst decodeTarget
		require.NoError(t, shared.DecodeJSON(req, &dst))
		assert.Equal(t, "Stand Mixers", dst.Title)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"x","titel":"typo"}`))

		var dst decodeTarget
		err := shared.DecodeJSON(req, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode request body")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))

		var dst decodeTarget
		assert.Error(t, shared.DecodeJSON(req, &dst))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("applies struct tags", func(t *testing.T) {
		t.Parallel()

		err := shared.ValidateRequest(&decodeTarget{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Title")

		assert.NoError(t, shared.ValidateRequest(&decodeTarget{Title: "x"}))
	})

	t.Run("prefers the type's own Validate method", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("self validation failed")
		assert.ErrorIs(t, shared.ValidateRequest(&selfValidating{err: wantErr}), wantErr)
		assert.NoError(t, shared.ValidateRequest(&selfValidating{}))
	})
}
