// Package plaintext normalises .txt and .csv knowledge base files. It is
// the catch-all: anything it is registered for is indexed as written.
package plaintext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

var _ driven.Normaliser = (*Normaliser)(nil)

// catchAllPriority loses to every format-aware normaliser.
const catchAllPriority = 5

// Normaliser only fixes line endings; cleanup is left to the chunker.
type Normaliser struct{}

func New() *Normaliser { return &Normaliser{} }

func (*Normaliser) SupportedMIMETypes() []string { return []string{"text/plain", "text/csv"} }

func (*Normaliser) Priority() int { return catchAllPriority }

func (*Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	doc := &domain.Document{
		ID:        uuid.NewString(),
		URI:       raw.URI,
		Title:     domain.TitleFromURI(raw.URI),
		Content:   strings.TrimSpace(strings.ReplaceAll(string(raw.Content), "\r\n", "\n")),
		Metadata:  domain.CopyMetadata(raw.Metadata),
		CreatedAt: time.Now(),
	}
	doc.Metadata["mime_type"] = raw.MIMEType

	// The loader may know a better title than the file name.
	if title, _ := raw.Metadata["title"].(string); title != "" {
		doc.Title = title
	}
	return doc, nil
}
