// Package markdown provides a Normaliser for Markdown knowledge base files.
package markdown

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts a markdown document to plain prose.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	source := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")

	meta := domain.CopyMetadata(raw.Metadata)
	meta["mime_type"] = raw.MIMEType
	meta["format"] = "markdown"

	return &domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     extractTitle(source, raw.URI),
		Content:   Strip(source),
		Metadata:  meta,
		CreatedAt: time.Now(),
	}, nil
}

var (
	firstHeading = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	codeBlock    = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`^#{1,6}\s+`)
	blockquote   = regexp.MustCompile(`^>\s*`)
	rule         = regexp.MustCompile(`^[-*_]{3,}$`)
	bullet       = regexp.MustCompile(`^[-*+]\s+`)
	numbered     = regexp.MustCompile(`^\d+[.)]\s+`)
	emphasis     = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	tableRule    = regexp.MustCompile(`^\|?[\s:|-]+\|?$`)
)

func extractTitle(content, uri string) string {
	if m := firstHeading.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return domain.TitleFromURI(uri)
}

// Strip removes markdown formatting. Headings, list items and table rows
// become standalone sentences so the chunker can split on them.
func Strip(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = inlineCode.ReplaceAllString(content, "$1")

	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || rule.MatchString(line) || tableRule.MatchString(line) {
			continue
		}

		structural := headings.MatchString(line) || bullet.MatchString(line) ||
			numbered.MatchString(line) || strings.HasPrefix(line, "|")

		line = headings.ReplaceAllString(line, "")
		line = blockquote.ReplaceAllString(line, "")
		line = bullet.ReplaceAllString(line, "")
		line = numbered.ReplaceAllString(line, "")
		if strings.HasPrefix(line, "|") {
			cells := strings.Split(strings.Trim(line, "|"), "|")
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			line = strings.Join(cells, ", ")
		}
		line = emphasis.ReplaceAllString(line, "$2")

		if structural {
			line = terminate(line)
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// terminate ends a line with a period unless it already has terminal punctuation.
func terminate(line string) string {
	if line == "" || strings.ContainsAny(line[len(line)-1:], ".!?:") {
		return line
	}
	return line + "."
}
