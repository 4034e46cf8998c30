package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/prompt"
)

// ContentGenerator is the orchestrator's view of the provider gateway.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		compiledPrompt string,
		opts generation.GenerateOptions,
	) (*generation.GenerateResult, error)
}

// stageTemplates holds the templates a session resolved up front. Loading
// them before the first provider call keeps missing-template failures in
// configuration-error territory with zero cost incurred.
type stageTemplates struct {
	intro      *domain.PromptTemplate
	section    *domain.PromptTemplate
	product    *domain.PromptTemplate
	conclusion *domain.PromptTemplate
}

// Orchestrator runs generation sessions: the sequential state machine
// Introduction -> outline sections -> product reviews -> Conclusion, with
// the stage set determined by content type.
//
// The Orchestrator itself is stateless and safe for concurrent use; all
// per-session state (context accumulator, usage counters, provider
// snapshot) lives in the session created by Run. Stages never run
// concurrently within a session because each prompt depends on the
// previous stage's output.
type Orchestrator struct {
	templates prompt.TemplateStore
	parser    *Parser
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator. If logger is nil, the default
// logger is used.
func NewOrchestrator(templates prompt.TemplateStore, parser *Parser, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		templates: templates,
		parser:    parser,
		logger:    logger.With(slog.String("component", "orchestrator")),
	}
}

// session carries the mutable state of one generation run.
type session struct {
	gateway   ContentGenerator
	acc       *Accumulator
	usage     domain.TokenUsage
	cost      float64
	estimated bool
	provider  string
	model     string
}

// generate runs one stage call and folds the result into the session
// counters.
func (s *session) generate(ctx context.Context, compiledPrompt, label string) (string, error) {
	res, err := s.gateway.GenerateContent(ctx, compiledPrompt, generation.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %s stage: %w", ErrSessionAborted, label, err)
	}

	s.acc.Push(label, res.Content)
	s.usage.Add(res.Usage)
	s.cost += res.Cost
	s.estimated = s.estimated || res.EstimatedUsage
	s.provider = res.ProviderUsed
	s.model = res.ModelUsed

	return res.Content, nil
}

// Run executes a full generation session for the request using the given
// gateway, which must already hold its session-scoped provider snapshot.
// On success it returns the complete document; any stage failure unwinds
// the session and returns a single aggregated error.
func (o *Orchestrator) Run(
	ctx context.Context,
	gateway ContentGenerator,
	req *domain.GenerationRequest,
) (*domain.GeneratedDocument, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tmpls, err := o.loadTemplates(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s := &session{gateway: gateway, acc: NewAccumulator()}

	o.logger.Info("generation session started",
		slog.String("content_type", string(req.ContentType)),
		slog.String("title", req.Title),
		slog.Int("products", len(req.Products)),
		slog.Int("outline_sections", len(req.Outline)))

	intro, err := o.runIntroduction(ctx, s, tmpls, req)
	if err != nil {
		return nil, err
	}

	sections, err := o.runOutlineSections(ctx, s, tmpls, req)
	if err != nil {
		return nil, err
	}

	records, productTexts, err := o.runProductReviews(ctx, s, tmpls, req)
	if err != nil {
		return nil, err
	}
	sections = append(sections, productTexts...)

	conclusion, err := o.runConclusion(ctx, s, tmpls, req)
	if err != nil {
		return nil, err
	}

	markdown := RenderMarkdown(req.Title, intro, sections, records, conclusion)
	html, err := RenderHTML(markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering: %w", ErrSessionAborted, err)
	}

	doc := &domain.GeneratedDocument{
		ID:             uuid.New(),
		ActorID:        req.ActorID,
		Title:          req.Title,
		ContentType:    req.ContentType,
		Introduction:   intro,
		Sections:       sections,
		Conclusion:     conclusion,
		ProductRecords: records,
		Markdown:       markdown,
		HTML:           html,
		Usage:          s.usage,
		Cost:           s.cost,
		EstimatedUsage: s.estimated,
		ProviderUsed:   s.provider,
		ModelUsed:      s.model,
		ElapsedSeconds: time.Since(start).Seconds(),
		CreatedAt:      time.Now().UTC(),
	}

	o.logger.Info("generation session completed",
		slog.String("document_id", doc.ID.String()),
		slog.String("provider", doc.ProviderUsed),
		slog.Int("total_tokens", doc.Usage.TotalTokens),
		slog.Float64("cost", doc.Cost),
		slog.Float64("elapsed_seconds", doc.ElapsedSeconds))

	return doc, nil
}

// loadTemplates resolves every template the session will need before the
// first provider call. A missing template fails fast as a configuration
// error.
func (o *Orchestrator) loadTemplates(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*stageTemplates, error) {
	codes := prompt.CodesFor(req.ContentType)
	tmpls := &stageTemplates{}

	var err error
	if tmpls.intro, err = o.templates.GetByCode(ctx, codes.Intro); err != nil {
		return nil, err
	}

	if len(req.Outline) > 0 || req.ContentType == domain.ContentTypeArticle {
		if tmpls.section, err = o.templates.GetByCode(ctx, codes.Section); err != nil {
			return nil, err
		}
	}

	if req.ContentType.IsProductType() {
		if tmpls.product, err = o.templates.GetByCode(ctx, codes.Product); err != nil {
			return nil, err
		}
	}

	if tmpls.conclusion, err = o.templates.GetByCode(ctx, codes.Conclusion); err != nil {
		return nil, err
	}

	return tmpls, nil
}

func (o *Orchestrator) runIntroduction(
	ctx context.Context,
	s *session,
	tmpls *stageTemplates,
	req *domain.GenerationRequest,
) (string, error) {
	vars := map[string]string{"title": req.Title}
	if req.ContentType.IsProductType() {
		vars["productCount"] = strconv.Itoa(len(req.Products))
	} else {
		vars["outlineTopics"] = outlineTopics(req.Outline)
	}

	return s.generate(ctx, prompt.Compile(tmpls.intro.Content, vars), "introduction")
}

func (o *Orchestrator) runOutlineSections(
	ctx context.Context,
	s *session,
	tmpls *stageTemplates,
	req *domain.GenerationRequest,
) ([]string, error) {
	if len(req.Outline) == 0 {
		return nil, nil
	}

	sections := make([]string, 0, len(req.Outline))
	total := len(req.Outline)

	for i, entry := range req.Outline {
		vars := map[string]string{
			"sectionTitle":       entry.Title,
			"sectionDescription": entry.Body,
			"position":           strconv.Itoa(i + 1),
			"total":              strconv.Itoa(total),
			"slidingContext":     s.acc.SlidingContext(),
		}

		label := "section: " + entry.Title
		text, err := s.generate(ctx, prompt.Compile(tmpls.section.Content, vars), label)
		if err != nil {
			return nil, err
		}

		sections = append(sections, text)
	}

	return sections, nil
}

func (o *Orchestrator) runProductReviews(
	ctx context.Context,
	s *session,
	tmpls *stageTemplates,
	req *domain.GenerationRequest,
) ([]domain.ProductRecord, []string, error) {
	if !req.ContentType.IsProductType() {
		return nil, nil, nil
	}

	records := make([]domain.ProductRecord, 0, len(req.Products))
	texts := make([]string, 0, len(req.Products))
	total := len(req.Products)

	for i, product := range req.Products {
		vars := map[string]string{
			"productName":    product.Name,
			"position":       strconv.Itoa(i + 1),
			"total":          strconv.Itoa(total),
			"slidingContext": s.acc.SlidingContext(),
		}

		label := "product: " + product.Name
		text, err := s.generate(ctx, prompt.Compile(tmpls.product.Content, vars), label)
		if err != nil {
			return nil, nil, err
		}

		parsed, shortfall := o.parser.Parse(text, req.ContentType)
		if shortfall.Missing() {
			o.logger.Warn("product review under-delivered pros/cons",
				slog.String("product", product.Name),
				slog.Int("missing_pros", shortfall.Pros),
				slog.Int("missing_cons", shortfall.Cons))
		}

		records = append(records, domain.ProductRecord{
			Product:     product,
			Description: parsed.Description,
			Pros:        parsed.Pros,
			Cons:        parsed.Cons,
		})
		texts = append(texts, text)
	}

	return records, texts, nil
}

func (o *Orchestrator) runConclusion(
	ctx context.Context,
	s *session,
	tmpls *stageTemplates,
	req *domain.GenerationRequest,
) (string, error) {
	vars := map[string]string{
		"title":       req.Title,
		"fullContext": s.acc.FullContext(),
	}

	if req.ContentType.IsProductType() {
		names := make([]string, len(req.Products))
		for i, p := range req.Products {
			names[i] = p.Name
		}
		vars["productNames"] = strings.Join(names, ", ")
	} else {
		vars["outlineTopics"] = outlineTopics(req.Outline)
	}

	return s.generate(ctx, prompt.Compile(tmpls.conclusion.Content, vars), "conclusion")
}

// outlineTopics joins outline titles into the comma-separated list the
// intro and conclusion templates expect.
func outlineTopics(outline []domain.OutlineSection) string {
	titles := make([]string, len(outline))
	for i, s := range outline {
		titles[i] = s.Title
	}
	return strings.Join(titles, ", ")
}
