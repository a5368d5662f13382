package driven

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// Normaliser extracts plain text from one family of file formats.
type Normaliser interface {
	SupportedMIMETypes() []string

	// Priority breaks ties when several normalisers claim a MIME type.
	// Higher wins; catch-all normalisers stay below 10.
	Priority() int

	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}

// NormaliserRegistry dispatches a raw document to the normaliser for its
// MIME type. Types nobody claims fail with domain.ErrUnsupportedType.
type NormaliserRegistry interface {
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
	SupportedMIMETypes() []string
}
