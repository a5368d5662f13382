// Package postprocessors turns normalised documents into indexable chunks.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs post-processors in order. The first stage receives no
// chunks and creates them; later stages filter or rewrite what they get.
type Pipeline struct {
	stages []driven.PostProcessor
}

// NewPipeline creates a pipeline running stages in the given order.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process chunks doc. The context is checked between stages.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.TextChunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil: %w", domain.ErrInvalidInput)
	}

	var chunks []domain.TextChunk
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := stage.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
		logger.Debug("%s: %s %d -> %d chunks", doc.Filename(), stage.Name(), len(chunks), len(out))
		chunks = out
	}
	return chunks, nil
}

// Stages returns the stage names in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
