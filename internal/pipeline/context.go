package pipeline

import "strings"

// Context budgets. The sliding window keeps the next prompt small while
// preserving continuity; the full transcript gives the conclusion stage
// broader awareness and is clipped at the end so the earliest content
// survives.
const (
	slidingWindowEntries = 2
	slidingEntryMaxChars = 1200
	transcriptMaxChars   = 10000
)

// contextEntry is one labeled generation pushed into the accumulator.
type contextEntry struct {
	label string
	text  string
}

// Accumulator maintains two independent views over a session's growing
// transcript: a short sliding window of the most recent generations and a
// capped full transcript of everything generated so far.
//
// An Accumulator is session-scoped and single-pass: entries are only ever
// appended, never rewound. It is not safe for concurrent use and never
// needs to be, because stages within a session run strictly sequentially.
type Accumulator struct {
	entries []contextEntry
}

// NewAccumulator creates an empty Accumulator for one session.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Push appends a labeled generation to both views.
func (a *Accumulator) Push(label, text string) {
	a.entries = append(a.entries, contextEntry{label: label, text: text})
}

// Len returns the number of entries pushed so far.
func (a *Accumulator) Len() int {
	return len(a.entries)
}

// SlidingContext returns the coherence context for the next generation:
// the most recent two entries, each clipped to a fixed character budget.
func (a *Accumulator) SlidingContext() string {
	start := len(a.entries) - slidingWindowEntries
	if start < 0 {
		start = 0
	}

	parts := make([]string, 0, slidingWindowEntries)
	for _, e := range a.entries[start:] {
		parts = append(parts, clip(e.text, slidingEntryMaxChars))
	}

	return strings.Join(parts, "\n\n")
}

// FullContext returns the labeled full-session transcript, clipped at the
// end to the total character budget. Earliest content is preserved; the
// conclusion stage cares more about where the document started than about
// the tail it just generated.
func (a *Accumulator) FullContext() string {
	var sb strings.Builder
	for i, e := range a.entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(e.label)
		sb.WriteString(":\n")
		sb.WriteString(e.text)
	}

	return clip(sb.String(), transcriptMaxChars)
}

// clip truncates s to at most max characters, keeping the head. Budgets
// count characters, not bytes, so a multibyte rune is never split.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}

	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
