package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/mocks"
	"github.com/draftforge/draftforge-api/internal/prompt"
)

// testTemplates returns a template store populated with every stage
// template the pipeline can look up.
func testTemplates() *mocks.MockTemplateStore {
	store := &mocks.MockTemplateStore{Templates: map[string]*domain.PromptTemplate{}}
	for _, code := range []string{
		prompt.CodeRoundupIntro, prompt.CodeRoundupProduct, prompt.CodeRoundupConclusion,
		prompt.CodeReviewIntro, prompt.CodeReviewProduct, prompt.CodeReviewConclusion,
		prompt.CodeArticleIntro, prompt.CodeArticleSection, prompt.CodeArticleConclusion,
		prompt.CodeOutlineSection,
	} {
		store.Templates[code] = &domain.PromptTemplate{
			ID:      uuid.New(),
			Code:    code,
			Content: code + " prompt for {title}{productName}{sectionTitle}",
			Active:  true,
		}
	}
	return store
}

func roundupRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		Title:       "Best Stand Mixers",
		ContentType: domain.ContentTypeRoundup,
		Products: []domain.Product{
			{Name: "MixMaster 3000", AffiliateLink: "https://example.com/mm3000"},
			{Name: "DoughPro"},
		},
		ActorID: uuid.New(),
	}
}

func TestOrchestratorRoundupSession(t *testing.T) {
	t.Parallel()

	gateway := &mocks.MockContentGenerator{
		GenerateContentFn: func(ctx context.Context, p string, opts generation.GenerateOptions) (*generation.GenerateResult, error) {
			text := "stage output"
			if strings.Contains(p, "product") {
				text = "DESCRIPTION: solid machine\nPROS:\n- p1\n- p2\n- p3\n- p4\nCONS:\n- c1\n- c2"
			}
			return &generation.GenerateResult{
				Content:      text,
				Usage:        domain.TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
				Cost:         0.01,
				ProviderUsed: "gemini",
				ModelUsed:    "gemini-2.0-flash",
			}, nil
		},
	}

	orch := NewOrchestrator(testTemplates(), NewParser(nil), nil)
	doc, err := orch.Run(context.Background(), gateway, roundupRequest())

	require.NoError(t, err)
	require.NotNil(t, doc)

	// Intro, two products, conclusion.
	assert.Equal(t, 4, gateway.CallCount())

	assert.Equal(t, "Best Stand Mixers", doc.Title)
	assert.Equal(t, domain.ContentTypeRoundup, doc.ContentType)
	assert.Equal(t, "stage output", doc.Introduction)
	assert.Equal(t, "stage output", doc.Conclusion)

	require.Len(t, doc.ProductRecords, 2)
	assert.Equal(t, "MixMaster 3000", doc.ProductRecords[0].Name)
	assert.Len(t, doc.ProductRecords[0].Pros, 4)
	assert.Len(t, doc.ProductRecords[0].Cons, 2)
	assert.Equal(t, "solid machine", doc.ProductRecords[0].Description)

	// Usage and cost accumulate across all four stages.
	assert.Equal(t, domain.TokenUsage{InputTokens: 400, OutputTokens: 200, TotalTokens: 600}, doc.Usage)
	assert.InDelta(t, 0.04, doc.Cost, 1e-9)
	assert.False(t, doc.EstimatedUsage)
	assert.Equal(t, "gemini", doc.ProviderUsed)
	assert.Equal(t, "gemini-2.0-flash", doc.ModelUsed)

	assert.Contains(t, doc.Markdown, "# Best Stand Mixers")
	assert.Contains(t, doc.Markdown, "## MixMaster 3000")
	assert.Contains(t, doc.Markdown, "## Conclusion")
	assert.Contains(t, doc.HTML, "<h1")
	assert.NotEqual(t, uuid.Nil, doc.ID)
}

func TestOrchestratorArticleSession(t *testing.T) {
	t.Parallel()

	gateway := &mocks.MockContentGenerator{Text: "article prose"}
	orch := NewOrchestrator(testTemplates(), NewParser(nil), nil)

	req := &domain.GenerationRequest{
		Title:       "A History of Bread",
		ContentType: domain.ContentTypeArticle,
		Outline: []domain.OutlineSection{
			{Title: "Early Grains", Body: "origins of cultivated wheat"},
			{Title: "The Modern Loaf"},
		},
		ActorID: uuid.New(),
	}

	doc, err := orch.Run(context.Background(), gateway, req)

	require.NoError(t, err)
	// Intro, two outline sections, conclusion. No product stages.
	assert.Equal(t, 4, gateway.CallCount())
	assert.Empty(t, doc.ProductRecords)
	assert.Len(t, doc.Sections, 2)
	assert.NotContains(t, doc.Markdown, "### Pros")
}

func TestOrchestratorStageOrdering(t *testing.T) {
	t.Parallel()

	gateway := &mocks.MockContentGenerator{Text: "ordered output"}
	orch := NewOrchestrator(testTemplates(), NewParser(nil), nil)

	req := roundupRequest()
	req.Outline = []domain.OutlineSection{{Title: "Buying Guide"}}

	_, err := orch.Run(context.Background(), gateway, req)
	require.NoError(t, err)

	prompts := gateway.Prompts()
	require.Len(t, prompts, 5)
	assert.Contains(t, prompts[0], prompt.CodeRoundupIntro)
	assert.Contains(t, prompts[1], prompt.CodeOutlineSection)
	assert.Contains(t, prompts[2], "MixMaster 3000")
	assert.Contains(t, prompts[3], "DoughPro")
	assert.Contains(t, prompts[4], prompt.CodeRoundupConclusion)
}

func TestOrchestratorStageFailureAbortsSession(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("provider exploded")
	gateway := &mocks.MockContentGenerator{
		GenerateContentFn: func(ctx context.Context, p string, opts generation.GenerateOptions) (*generation.GenerateResult, error) {
			if strings.Contains(p, "DoughPro") {
				return nil, providerErr
			}
			return &generation.GenerateResult{Content: "fine"}, nil
		},
	}

	orch := NewOrchestrator(testTemplates(), NewParser(nil), nil)
	doc, err := orch.Run(context.Background(), gateway, roundupRequest())

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionAborted)
	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "product: DoughPro stage")

	// The session stops at the failing stage; the conclusion never runs.
	assert.Equal(t, 3, gateway.CallCount())
}

func TestOrchestratorMissingTemplateFailsBeforeGeneration(t *testing.T) {
	t.Parallel()

	store := testTemplates()
	delete(store.Templates, prompt.CodeRoundupConclusion)

	gateway := &mocks.MockContentGenerator{}
	orch := NewOrchestrator(store, NewParser(nil), nil)

	doc, err := orch.Run(context.Background(), gateway, roundupRequest())

	assert.Nil(t, doc)
	require.Error(t, err)

	// Templates resolve up front, so no provider call is ever made.
	assert.Equal(t, 0, gateway.CallCount())
}

func TestOrchestratorInvalidRequest(t *testing.T) {
	t.Parallel()

	gateway := &mocks.MockContentGenerator{}
	orch := NewOrchestrator(testTemplates(), NewParser(nil), nil)

	req := roundupRequest()
	req.Products = nil

	doc, err := orch.Run(context.Background(), gateway, req)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrRequestNoProducts)
	assert.Equal(t, 0, gateway.CallCount())
}

func TestOrchestratorSlidingContextFlowsIntoPrompts(t *testing.T) {
	t.Parallel()

	store := testTemplates()
	store.Templates[prompt.CodeRoundupProduct].Content = "review {productName} with context: {slidingContext}"

	introText := "INTRO-SENTINEL"
	gateway := &mocks.MockContentGenerator{
		GenerateContentFn: func(ctx context.Context, p string, opts generation.GenerateOptions) (*generation.GenerateResult, error) {
			return &generation.GenerateResult{Content: fmt.Sprintf("%s output %d", introText, len(p))}, nil
		},
	}

	orch := NewOrchestrator(store, NewParser(nil), nil)
	_, err := orch.Run(context.Background(), gateway, roundupRequest())
	require.NoError(t, err)

	prompts := gateway.Prompts()
	require.Len(t, prompts, 4)
	// The first product prompt carries the introduction's output.
	assert.Contains(t, prompts[1], introText)
}
