// Package chunker provides a sentence-aware, word-bounded text chunking processor.
package chunker

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// Default chunk bounds, counted in words.
const (
	DefaultMaxWords = 500
	DefaultMinWords = 200
	DefaultOverlap  = 50
)

// unknownSource names chunks whose document has no filename.
const unknownSource = "unknown"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^\w\s.,;:!?\-()]`)
	sentenceEnd   = regexp.MustCompile(`[.!?]+\s+`)
)

// Processor splits document content into overlapping chunks of whole sentences.
// It implements the PostProcessor interface.
//
// A trailing chunk shorter than the minimum is dropped, as is a chunk that
// overflows before reaching the minimum. Both are lossy by construction.
type Processor struct {
	maxWords int
	minWords int
	overlap  int
	now      func() time.Time
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxWords sets the maximum number of words per chunk.
func WithMaxWords(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxWords = n
		}
	}
}

// WithMinWords sets the minimum number of words a chunk needs to be emitted.
func WithMinWords(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minWords = n
		}
	}
}

// WithOverlap sets how many trailing words of a chunk seed the next one.
func WithOverlap(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlap = n
		}
	}
}

// WithClock overrides the created_at timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxWords: DefaultMaxWords,
		minWords: DefaultMinWords,
		overlap:  DefaultOverlap,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.minWords > p.maxWords {
		p.minWords = p.maxWords
	}
	if p.overlap >= p.maxWords {
		p.overlap = p.maxWords / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process chunks the document content. Input chunks are ignored.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.TextChunk) ([]domain.TextChunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	meta := domain.CopyMetadata(doc.Metadata)
	if _, ok := meta[domain.MetaFilename]; !ok && doc.URI != "" {
		meta[domain.MetaFilename] = doc.Filename()
	}

	return p.Chunk(doc.Content, meta), nil
}

// Chunk splits text into chunks carrying a copy of metadata.
// Empty text yields no chunks.
func (p *Processor) Chunk(text string, metadata map[string]any) []domain.TextChunk {
	text = Clean(text)
	if text == "" {
		return nil
	}

	source := unknownSource
	if name, ok := metadata[domain.MetaFilename].(string); ok && name != "" {
		source = name
	}

	var (
		chunks  []domain.TextChunk
		current []string
		count   int
		number  = 1
	)

	emit := func() {
		chunks = append(chunks, p.newChunk(strings.Join(current, " "), count, number, source, metadata))
		number++
	}

	for _, sentence := range p.boundedSentences(text) {
		words := wordCount(sentence)

		if count+words > p.maxWords && len(current) > 0 {
			if count >= p.minWords {
				emit()
			}

			current = p.overlapSentences(current)
			count = wordCount(strings.Join(current, " "))
			if count+words > p.maxWords {
				current, count = nil, 0
			}
		}

		current = append(current, sentence)
		count += words
	}

	if len(current) > 0 && count >= p.minWords {
		emit()
	}

	return chunks
}

// boundedSentences splits text into sentences, cutting any sentence longer
// than the maximum into word windows so no chunk can exceed it.
func (p *Processor) boundedSentences(text string) []string {
	sentences := SplitSentences(text)
	bounded := make([]string, 0, len(sentences))

	for _, s := range sentences {
		words := strings.Fields(s)
		if len(words) <= p.maxWords {
			bounded = append(bounded, s)
			continue
		}
		for start := 0; start < len(words); start += p.maxWords {
			end := min(start+p.maxWords, len(words))
			bounded = append(bounded, strings.Join(words[start:end], " "))
		}
	}

	return bounded
}

// overlapSentences returns the tail of a closed chunk that seeds the next one:
// the last overlap words, re-segmented into sentences.
func (p *Processor) overlapSentences(current []string) []string {
	if p.overlap == 0 {
		return nil
	}

	words := strings.Fields(strings.Join(current, " "))
	if len(words) <= p.overlap {
		return append([]string(nil), current...)
	}

	return SplitSentences(strings.Join(words[len(words)-p.overlap:], " "))
}

func (p *Processor) newChunk(text string, words, number int, source string, metadata map[string]any) domain.TextChunk {
	meta := domain.CopyMetadata(metadata)
	meta[domain.MetaChunkNumber] = number
	meta[domain.MetaCreatedAt] = p.now().Format(time.RFC3339)

	return domain.TextChunk{
		ChunkID:    ChunkID(source, number),
		Text:       text,
		Metadata:   meta,
		WordCount:  words,
		SourceFile: source,
	}
}

// ChunkID builds the identifier for the n-th chunk of a source file.
func ChunkID(source string, n int) string {
	return fmt.Sprintf("%s_%03d", source, n)
}

// Clean collapses whitespace and strips characters outside the safe
// alphanumeric and punctuation set.
func Clean(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = unsafeChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// SplitSentences splits text after runs of terminal punctuation followed by
// whitespace. The punctuation stays with its sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0

	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
