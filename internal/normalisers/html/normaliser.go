// Package html provides a Normaliser for exported help-centre HTML pages.
// Scripts, styles and markup are removed; block elements become sentences.
package html

import (
	"context"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts an HTML page to readable text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	page := string(raw.Content)

	meta := domain.CopyMetadata(raw.Metadata)
	meta["mime_type"] = raw.MIMEType
	meta["format"] = "html"

	return &domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     extractTitle(page, raw.URI),
		Content:   Strip(page),
		Metadata:  meta,
		CreatedAt: time.Now(),
	}, nil
}

var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	droppedBlocks = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg|nav|footer)[^>]*>.*?</(script|style|noscript|head|svg|nav|footer)>`)
	comments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBoundary = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|td|th|blockquote|pre|table|section|article|dt|dd)[^>]*>|<(br|hr)\s*/?>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	spaces        = regexp.MustCompile(`[ \t\x{00a0}]+`)
)

func extractTitle(page, uri string) string {
	if m := titleTag.FindStringSubmatch(page); m != nil {
		if title := strings.TrimSpace(html.UnescapeString(m[1])); title != "" {
			return title
		}
	}
	return domain.TitleFromURI(uri)
}

// Strip removes markup and returns one line per block element. Lines
// without terminal punctuation get a period so headings and list items
// do not run into the following sentence.
func Strip(page string) string {
	page = droppedBlocks.ReplaceAllString(page, "")
	page = comments.ReplaceAllString(page, "")
	page = blockBoundary.ReplaceAllString(page, "\n")
	page = anyTag.ReplaceAllString(page, "")
	page = html.UnescapeString(page)
	page = spaces.ReplaceAllString(page, " ")

	var lines []string
	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.ContainsAny(line[len(line)-1:], ".!?:") {
			line += "."
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
