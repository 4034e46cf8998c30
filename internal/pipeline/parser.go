package pipeline

import (
	"log/slog"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Section markers recognized by the parser. Matching is case-insensitive
// and tolerates leading markdown decoration (#, *, whitespace).
const (
	markerDescription = "DESCRIPTION:"
	markerPros        = "PROS:"
	markerCons        = "CONS:"
	markerAnalysis    = "ANALYSIS:"
)

// Deterministic filler used when the model under-delivers pros or cons.
// Padding is a deliberate policy: it protects downstream rendering from
// variable-length lists at the cost of accuracy, and shortfalls are logged
// for quality monitoring rather than surfaced as errors.
const (
	prosFiller = "Additional strengths covered in the detailed analysis above."
	consFiller = "No further significant drawbacks identified."
)

// captureState tracks which block of the semi-structured response the
// scanner is currently inside.
type captureState int

const (
	captureNone captureState = iota
	captureDescription
	capturePros
	captureCons
	captureAnalysis
)

// Shortfall reports how many pros and cons the padding policy had to
// fabricate for one parse.
type Shortfall struct {
	Pros int
	Cons int
}

// Missing reports whether any padding was applied.
func (s Shortfall) Missing() bool {
	return s.Pros > 0 || s.Cons > 0
}

// Parser recovers a typed ParsedSection from a model's free-text product
// review under the exact-cardinality contract of the content type.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a Parser. If logger is nil, the default logger is used.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	return &Parser{logger: logger.With(slog.String("component", "output_parser"))}
}

// Parse scans rawText line by line and returns a ParsedSection whose Pros
// and Cons hold exactly the cardinality the content type demands. Bullet
// lines beyond the cap are dropped in encounter order; shortfalls are
// padded with deterministic filler. The returned Shortfall counts the
// padding applied, for quality monitoring.
func (p *Parser) Parse(rawText string, contentType domain.ContentType) (*domain.ParsedSection, Shortfall) {
	prosCap, consCap := contentType.ProsConsCardinality()

	var (
		descParts []string
		pros      []string
		cons      []string
		state     = captureNone
	)

	for _, line := range strings.Split(rawText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case hasMarker(trimmed, markerDescription):
			state = captureDescription
			if rest := afterMarker(trimmed, markerDescription); rest != "" {
				descParts = append(descParts, rest)
			}
		case hasMarker(trimmed, markerPros):
			state = capturePros
		case hasMarker(trimmed, markerCons):
			state = captureCons
		case hasMarker(trimmed, markerAnalysis):
			// Analysis text folds into the description rather than a
			// separate field.
			state = captureAnalysis
			if rest := afterMarker(trimmed, markerAnalysis); rest != "" {
				descParts = append(descParts, rest)
			}
		case isBullet(trimmed):
			item := stripBullet(trimmed)
			switch state {
			case capturePros:
				if len(pros) < prosCap {
					pros = append(pros, item)
				}
			case captureCons:
				if len(cons) < consCap {
					cons = append(cons, item)
				}
			default:
				// Bullets outside a pros/cons block belong to the
				// surrounding prose.
				descParts = append(descParts, item)
			}
		default:
			switch state {
			case captureDescription, captureAnalysis, captureNone:
				descParts = append(descParts, trimmed)
			}
		}
	}

	shortfall := Shortfall{
		Pros: prosCap - len(pros),
		Cons: consCap - len(cons),
	}
	if shortfall.Pros < 0 {
		shortfall.Pros = 0
	}
	if shortfall.Cons < 0 {
		shortfall.Cons = 0
	}

	if shortfall.Missing() {
		p.logger.Warn("parse shortfall, padding with filler",
			slog.String("content_type", string(contentType)),
			slog.Int("missing_pros", shortfall.Pros),
			slog.Int("missing_cons", shortfall.Cons))
	}

	return &domain.ParsedSection{
		Description: strings.Join(descParts, " "),
		Pros:        padList(pros, prosCap, prosFiller),
		Cons:        padList(cons, consCap, consFiller),
	}, shortfall
}

// padList returns items extended with filler up to exactly n entries. It is
// the parser's named padding policy, isolated so it can be swapped or
// disabled in tests.
func padList(items []string, n int, filler string) []string {
	out := make([]string, 0, n)
	out = append(out, items...)
	for len(out) < n {
		out = append(out, filler)
	}
	return out[:n]
}

// hasMarker reports whether the line starts with the given marker, after
// tolerating leading markdown decoration.
func hasMarker(line, marker string) bool {
	stripped := strings.TrimLeft(line, "#* \t")
	return strings.HasPrefix(strings.ToUpper(stripped), marker)
}

// afterMarker returns the text following the marker on the same line.
func afterMarker(line, marker string) string {
	stripped := strings.TrimLeft(line, "#* \t")
	idx := len(marker)
	if idx >= len(stripped) {
		return ""
	}
	return strings.TrimSpace(stripped[idx:])
}

// isBullet reports whether the line begins with a list marker: -, *, •, or
// a numbered "N." prefix.
func isBullet(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") {
		return true
	}

	// Numbered bullets: one or more digits followed by a dot.
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		return i > 0 && r == '.'
	}

	return false
}

// stripBullet removes the leading list marker from a bullet line.
func stripBullet(line string) string {
	for _, prefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}

	if idx := strings.Index(line, "."); idx > 0 {
		return strings.TrimSpace(line[idx+1:])
	}

	return line
}
