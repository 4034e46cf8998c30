package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/prompt"
)

func TestCodesFor(t *testing.T) {
	t.Parallel()

	t.Run("roundup", func(t *testing.T) {
		t.Parallel()

		codes := prompt.CodesFor(domain.ContentTypeRoundup)
		assert.Equal(t, prompt.CodeRoundupIntro, codes.Intro)
		assert.Equal(t, prompt.CodeOutlineSection, codes.Section)
		assert.Equal(t, prompt.CodeRoundupProduct, codes.Product)
		assert.Equal(t, prompt.CodeRoundupConclusion, codes.Conclusion)
	})

	t.Run("review", func(t *testing.T) {
		t.Parallel()

		codes := prompt.CodesFor(domain.ContentTypeReview)
		assert.Equal(t, prompt.CodeReviewIntro, codes.Intro)
		assert.Equal(t, prompt.CodeReviewProduct, codes.Product)
		assert.Equal(t, prompt.CodeReviewConclusion, codes.Conclusion)
	})

	t.Run("article has no product stage", func(t *testing.T) {
		t.Parallel()

		codes := prompt.CodesFor(domain.ContentTypeArticle)
		assert.Equal(t, prompt.CodeArticleIntro, codes.Intro)
		assert.Equal(t, prompt.CodeArticleSection, codes.Section)
		assert.Empty(t, codes.Product)
		assert.Equal(t, prompt.CodeArticleConclusion, codes.Conclusion)
	})
}
