package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorSlidingContext(t *testing.T) {
	t.Parallel()

	t.Run("empty accumulator yields empty context", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		assert.Equal(t, "", acc.SlidingContext())
		assert.Equal(t, 0, acc.Len())
	})

	t.Run("single entry is returned whole", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		acc.Push("introduction", "intro text")

		assert.Equal(t, "intro text", acc.SlidingContext())
	})

	t.Run("only the most recent two entries are kept", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		acc.Push("introduction", "first")
		acc.Push("section: a", "second")
		acc.Push("section: b", "third")
		acc.Push("section: c", "fourth")

		ctx := acc.SlidingContext()
		assert.Equal(t, "third\n\nfourth", ctx)
		assert.NotContains(t, ctx, "first")
		assert.NotContains(t, ctx, "second")
	})

	t.Run("entries are clipped to the per-entry budget", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", slidingEntryMaxChars+500)
		acc := NewAccumulator()
		acc.Push("introduction", long)
		acc.Push("section: a", "short")

		parts := strings.Split(acc.SlidingContext(), "\n\n")
		assert.Len(t, parts, 2)
		assert.Len(t, parts[0], slidingEntryMaxChars)
		assert.Equal(t, "short", parts[1])
	})
}

func TestAccumulatorFullContext(t *testing.T) {
	t.Parallel()

	t.Run("labels every entry", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		acc.Push("introduction", "intro text")
		acc.Push("product: Widget", "widget review")

		full := acc.FullContext()
		assert.Contains(t, full, "introduction:\nintro text")
		assert.Contains(t, full, "product: Widget:\nwidget review")
	})

	t.Run("keeps every entry, not just the window", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		for _, label := range []string{"a", "b", "c", "d", "e"} {
			acc.Push(label, "text-"+label)
		}

		full := acc.FullContext()
		for _, label := range []string{"a", "b", "c", "d", "e"} {
			assert.Contains(t, full, "text-"+label)
		}
	})

	t.Run("clips at the end preserving the head", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		acc.Push("introduction", "HEAD-MARKER "+strings.Repeat("a", transcriptMaxChars))
		acc.Push("conclusion", "TAIL-MARKER")

		full := acc.FullContext()
		assert.Len(t, full, transcriptMaxChars)
		assert.Contains(t, full, "HEAD-MARKER")
		assert.NotContains(t, full, "TAIL-MARKER")
	})

	t.Run("under budget is untouched", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		acc.Push("introduction", "short")

		assert.Equal(t, "introduction:\nshort", acc.FullContext())
	})
}

func TestClip(t *testing.T) {
	t.Parallel()

	t.Run("short input is returned unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello", clip("hello", 10))
	})

	t.Run("ascii input is cut to exactly the budget", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, strings.Repeat("x", 5), clip(strings.Repeat("x", 8), 5))
	})

	t.Run("multibyte runes are never split", func(t *testing.T) {
		t.Parallel()

		clipped := clip(strings.Repeat("é", 20), 5)
		assert.True(t, utf8.ValidString(clipped))
		assert.Equal(t, 5, utf8.RuneCountInString(clipped))
		assert.Equal(t, strings.Repeat("é", 5), clipped)
	})

	t.Run("clipped entries stay valid utf8", func(t *testing.T) {
		t.Parallel()

		acc := NewAccumulator()
		acc.Push("introduction", strings.Repeat("世", slidingEntryMaxChars+100))
		acc.Push("conclusion", strings.Repeat("界", transcriptMaxChars))

		assert.True(t, utf8.ValidString(acc.SlidingContext()))
		assert.True(t, utf8.ValidString(acc.FullContext()))
	})
}
