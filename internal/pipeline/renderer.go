package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// markdown is the shared goldmark instance used to derive HTML from the
// assembled Markdown document. GFM covers the tables and strikethrough the
// models occasionally emit.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderMarkdown assembles the generated pieces into the final Markdown
// document. It is a pure function: no network, no state, deterministic
// given its inputs.
func RenderMarkdown(
	title, introduction string,
	sections []string,
	records []domain.ProductRecord,
	conclusion string,
) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	sb.WriteString(introduction)
	sb.WriteString("\n")

	for _, section := range sections {
		sb.WriteString("\n")
		sb.WriteString(section)
		sb.WriteString("\n")
	}

	for _, record := range records {
		sb.WriteString("\n## ")
		sb.WriteString(record.Name)
		sb.WriteString("\n\n")

		if record.ImageRef != "" {
			fmt.Fprintf(&sb, "![%s](%s)\n\n", record.Name, record.ImageRef)
		}

		sb.WriteString(record.Description)
		sb.WriteString("\n\n### Pros\n\n")
		for _, pro := range record.Pros {
			sb.WriteString("- ")
			sb.WriteString(pro)
			sb.WriteString("\n")
		}

		sb.WriteString("\n### Cons\n\n")
		for _, con := range record.Cons {
			sb.WriteString("- ")
			sb.WriteString(con)
			sb.WriteString("\n")
		}

		if record.AffiliateLink != "" {
			fmt.Fprintf(&sb, "\n[Check price](%s)\n", record.AffiliateLink)
		}
	}

	sb.WriteString("\n## Conclusion\n\n")
	sb.WriteString(conclusion)
	sb.WriteString("\n")

	return sb.String()
}

// RenderHTML converts the assembled Markdown document to HTML.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("converting markdown to HTML: %w", err)
	}

	return buf.String(), nil
}
