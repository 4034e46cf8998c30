package domain

import "errors"

// ContentType identifies which generation recipe a request follows.
// The type determines the stage sequence of the pipeline and the
// pros/cons cardinality the output parser must satisfy.
type ContentType string

// Supported content types.
const (
	// ContentTypeRoundup is a multi-product comparison article.
	ContentTypeRoundup ContentType = "roundup"

	// ContentTypeReview is a single-product deep-dive review.
	ContentTypeReview ContentType = "review"

	// ContentTypeArticle is an outline-driven informational article
	// with no product records.
	ContentTypeArticle ContentType = "article"
)

// ErrInvalidContentType is returned when a content type is not one of the
// supported values.
var ErrInvalidContentType = errors.New("invalid content type")

// Validate checks that the content type is one of the supported values.
func (c ContentType) Validate() error {
	switch c {
	case ContentTypeRoundup, ContentTypeReview, ContentTypeArticle:
		return nil
	default:
		return ErrInvalidContentType
	}
}

// IsProductType reports whether the content type generates one section per
// product and therefore requires a non-empty product list.
func (c ContentType) IsProductType() bool {
	return c == ContentTypeRoundup || c == ContentTypeReview
}

// ProsConsCardinality returns the exact number of pros and cons the output
// parser must produce for this content type. Article content carries no
// parsed pros/cons and returns (0, 0).
func (c ContentType) ProsConsCardinality() (pros, cons int) {
	switch c {
	case ContentTypeRoundup:
		return 4, 2
	case ContentTypeReview:
		return 6, 3
	default:
		return 0, 0
	}
}
