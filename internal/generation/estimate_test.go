package generation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftforge/draftforge-api/internal/generation"
)

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty text estimates zero", text: "", want: 0},
		{name: "short text rounds up to one", text: "hi", want: 1},
		{name: "exactly one token", text: "four", want: 1},
		{name: "long prose divides by four", text: strings.Repeat("a", 400), want: 100},
		{name: "remainder truncates", text: strings.Repeat("a", 403), want: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, generation.EstimateTokens(tc.text))
		})
	}
}
