// Package dedupe drops repeated chunks within a document.
package dedupe

import (
	"context"
	"crypto/sha256"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// Processor removes chunks whose text repeats an earlier chunk of the same
// document once case and whitespace are ignored. Help-centre exports often
// repeat the same footer or disclaimer on every page.
type Processor struct {
	minWords int
}

// Option configures the processor.
type Option func(*Processor)

// WithMinWords exempts chunks shorter than n words from deduplication.
func WithMinWords(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minWords = n
		}
	}
}

// New creates a dedupe processor.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string { return "dedupe" }

// Process keeps the first occurrence of each chunk text. Chunk IDs are not
// renumbered.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.TextChunk) ([]domain.TextChunk, error) {
	seen := make(map[[sha256.Size]byte]bool, len(chunks))
	out := chunks[:0:0]

	for _, c := range chunks {
		if c.WordCount < p.minWords {
			out = append(out, c)
			continue
		}
		key := fingerprint(c.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out, nil
}

func fingerprint(text string) [sha256.Size]byte {
	return sha256.Sum256([]byte(strings.ToLower(strings.Join(strings.Fields(text), " "))))
}
