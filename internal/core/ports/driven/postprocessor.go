package driven

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// PostProcessor is one chunking stage.
type PostProcessor interface {
	// Name is the key the stage is registered and configured under.
	Name() string

	// Process receives the chunks of earlier stages, nil for the first,
	// and returns the chunks for the next. The input must not be modified.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.TextChunk) ([]domain.TextChunk, error)
}

// PostProcessorPipeline turns a normalised document into indexable chunks.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.TextChunk, error)
}
