package prompt

import (
	"context"
	"errors"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Template codes the pipeline looks up, one per stage and content type.
// Product types share the outline-section and product templates; the
// article type has its own stage set.
const (
	CodeRoundupIntro      = "roundup_intro"
	CodeRoundupProduct    = "roundup_product"
	CodeRoundupConclusion = "roundup_conclusion"

	CodeReviewIntro      = "review_intro"
	CodeReviewProduct    = "review_product"
	CodeReviewConclusion = "review_conclusion"

	CodeArticleIntro      = "article_intro"
	CodeArticleSection    = "article_section"
	CodeArticleConclusion = "article_conclusion"

	// CodeOutlineSection is shared by all content types for optional
	// outline-driven sections.
	CodeOutlineSection = "outline_section"
)

// ErrTemplateNotFound is returned when no active template exists for a
// requested code. This is a configuration error: it surfaces before any
// provider call is made and instructs reconfiguration rather than retry.
var ErrTemplateNotFound = errors.New("no active prompt template for code")

// TemplateStore is the read-only lookup boundary to the external template
// store. Implementations return only active templates.
type TemplateStore interface {
	// GetByCode retrieves the active template with the given code.
	// Returns ErrTemplateNotFound if no active template exists.
	GetByCode(ctx context.Context, code string) (*domain.PromptTemplate, error)
}

// StageCodes holds the template codes for one content type's stage
// sequence.
type StageCodes struct {
	Intro      string
	Section    string
	Product    string
	Conclusion string
}

// CodesFor returns the template codes used by the given content type.
func CodesFor(contentType domain.ContentType) StageCodes {
	switch contentType {
	case domain.ContentTypeRoundup:
		return StageCodes{
			Intro:      CodeRoundupIntro,
			Section:    CodeOutlineSection,
			Product:    CodeRoundupProduct,
			Conclusion: CodeRoundupConclusion,
		}
	case domain.ContentTypeReview:
		return StageCodes{
			Intro:      CodeReviewIntro,
			Section:    CodeOutlineSection,
			Product:    CodeReviewProduct,
			Conclusion: CodeReviewConclusion,
		}
	default:
		return StageCodes{
			Intro:      CodeArticleIntro,
			Section:    CodeArticleSection,
			Conclusion: CodeArticleConclusion,
		}
	}
}
