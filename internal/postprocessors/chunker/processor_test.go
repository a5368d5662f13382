package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// sentence builds a sentence of n distinct words tagged with id.
func sentence(id, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("s%dw%d", id, i+1)
	}
	return strings.Join(words, " ") + "."
}

func paragraph(lengths ...int) string {
	parts := make([]string, len(lengths))
	for i, n := range lengths {
		parts[i] = sentence(i, n)
	}
	return strings.Join(parts, " ")
}

func repeat(n, length int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = length
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.maxWords != DefaultMaxWords || p.minWords != DefaultMinWords || p.overlap != DefaultOverlap {
			t.Errorf("unexpected defaults: max=%d min=%d overlap=%d", p.maxWords, p.minWords, p.overlap)
		}
	})

	t.Run("custom bounds", func(t *testing.T) {
		p := New(WithMaxWords(300), WithMinWords(100), WithOverlap(20))
		if p.maxWords != 300 || p.minWords != 100 || p.overlap != 20 {
			t.Errorf("unexpected bounds: max=%d min=%d overlap=%d", p.maxWords, p.minWords, p.overlap)
		}
	})

	t.Run("min above max is clamped", func(t *testing.T) {
		p := New(WithMaxWords(100), WithMinWords(150))
		if p.minWords != 100 {
			t.Errorf("expected min clamped to 100, got %d", p.minWords)
		}
	})

	t.Run("overlap exceeding max is reduced", func(t *testing.T) {
		p := New(WithMaxWords(100), WithMinWords(10), WithOverlap(150))
		if p.overlap >= p.maxWords {
			t.Error("overlap should be reduced when it exceeds max words")
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		p := New(WithMaxWords(0), WithMinWords(-1), WithOverlap(-5))
		if p.maxWords != DefaultMaxWords || p.minWords != DefaultMinWords || p.overlap != DefaultOverlap {
			t.Error("expected defaults to survive invalid options")
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	if New().Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", New().Name())
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	p := New()
	for _, text := range []string{"", "   ", "\n\t", "@@@ ###"} {
		if chunks := p.Chunk(text, nil); len(chunks) != 0 {
			t.Errorf("expected no chunks for %q, got %d", text, len(chunks))
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello\n\n world\t ", "hello world"},
		{"Price: $5.99 & free!", "Price: 5.99  free!"},
		{"Call (800) 555-0100; ok?", "Call (800) 555-0100; ok?"},
		{"emoji 😀 gone", "emoji  gone"},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Returns are free. Really?! Yes... Ship today")
	want := []string{"Returns are free.", "Really?!", "Yes...", "Ship today"}

	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunk_WordCountsWithinBounds(t *testing.T) {
	lengths := make([]int, 300)
	for i := range lengths {
		lengths[i] = 3 + (i*7)%38
	}

	p := New()
	chunks := p.Chunk(paragraph(lengths...), map[string]any{domain.MetaFilename: "faq.pdf"})

	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if c.WordCount < DefaultMinWords || c.WordCount > DefaultMaxWords {
			t.Errorf("chunk %s has %d words, outside [%d, %d]", c.ChunkID, c.WordCount, DefaultMinWords, DefaultMaxWords)
		}
		if c.WordCount != len(strings.Fields(c.Text)) {
			t.Errorf("chunk %s word count %d does not match text", c.ChunkID, c.WordCount)
		}
	}
}

func TestChunk_ClosesBeforeExceedingMax(t *testing.T) {
	// 50 ten-word sentences fill exactly 500 words; one more forces a new chunk.
	p := New(WithMinWords(50))
	chunks := p.Chunk(paragraph(repeat(51, 10)...), map[string]any{domain.MetaFilename: "shipping_guide.pdf"})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].WordCount != 500 {
		t.Errorf("expected first chunk of 500 words, got %d", chunks[0].WordCount)
	}
	if chunks[1].WordCount != 60 {
		t.Errorf("expected second chunk of 50 overlap + 10 words, got %d", chunks[1].WordCount)
	}
	if !strings.HasPrefix(chunks[1].Text, "s45w1 ") {
		t.Errorf("expected overlap to start at sentence 45, got %q", chunks[1].Text[:20])
	}
	if !strings.HasSuffix(chunks[1].Text, sentence(50, 10)) {
		t.Error("expected second chunk to end with the new sentence")
	}
}

func TestChunk_DropsUndersizedRemainder(t *testing.T) {
	p := New()

	if chunks := p.Chunk(paragraph(repeat(15, 10)...), nil); len(chunks) != 0 {
		t.Errorf("expected 150-word text to be dropped, got %d chunks", len(chunks))
	}

	// 40 sentences fill 400 words; the next 12 overflow. The 50+120 word tail is below min.
	lengths := append(repeat(40, 10), repeat(12, 10)...)
	chunks := New(WithMaxWords(400)).Chunk(paragraph(lengths...), nil)
	if len(chunks) != 1 {
		t.Fatalf("expected tail to be dropped, got %d chunks", len(chunks))
	}
}

func TestChunk_IDsAndMetadata(t *testing.T) {
	fixed := time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC)
	p := New(WithMinWords(20), WithMaxWords(50), WithOverlap(10), WithClock(func() time.Time { return fixed }))

	meta := map[string]any{
		domain.MetaFilename: "return_policy.pdf",
		domain.MetaTopic:    "returns",
	}
	chunks := p.Chunk(paragraph(repeat(12, 10)...), meta)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		wantID := fmt.Sprintf("return_policy.pdf_%03d", i+1)
		if c.ChunkID != wantID {
			t.Errorf("chunk %d id = %s, want %s", i, c.ChunkID, wantID)
		}
		if c.SourceFile != "return_policy.pdf" {
			t.Errorf("unexpected source file %s", c.SourceFile)
		}
		if c.Metadata[domain.MetaChunkNumber] != i+1 {
			t.Errorf("chunk %d has chunk_number %v", i, c.Metadata[domain.MetaChunkNumber])
		}
		if c.Metadata[domain.MetaTopic] != "returns" {
			t.Error("expected document metadata to be copied")
		}
		if c.Metadata[domain.MetaCreatedAt] != "2024-11-28T10:00:00Z" {
			t.Errorf("unexpected created_at %v", c.Metadata[domain.MetaCreatedAt])
		}
	}

	if _, ok := meta[domain.MetaChunkNumber]; ok {
		t.Error("input metadata must not be mutated")
	}
}

func TestChunk_UnknownSource(t *testing.T) {
	chunks := New(WithMinWords(1)).Chunk("A short note about gift wrapping.", nil)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].ChunkID != "unknown_001" {
		t.Errorf("unexpected id %s", chunks[0].ChunkID)
	}
}

func TestChunk_SplitsOverlongSentence(t *testing.T) {
	p := New(WithMaxWords(100), WithMinWords(10), WithOverlap(10))
	chunks := p.Chunk(sentence(0, 250), nil)

	if len(chunks) < 2 {
		t.Fatalf("expected overlong sentence to be split, got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if c.WordCount > 100 {
			t.Errorf("chunk %s exceeds max with %d words", c.ChunkID, c.WordCount)
		}
	}
}

func TestProcessor_Process(t *testing.T) {
	p := New(WithMinWords(1))

	t.Run("nil document", func(t *testing.T) {
		if _, err := p.Process(context.Background(), nil, nil); err == nil {
			t.Error("expected error for nil document")
		}
	})

	t.Run("filename falls back to URI", func(t *testing.T) {
		doc := &domain.Document{URI: "docs/warranty_info.md", Content: "One year warranty. Covers defects."}
		chunks, err := p.Process(context.Background(), doc, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].SourceFile != "docs/warranty_info.md" {
			t.Errorf("unexpected source %s", chunks[0].SourceFile)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		chunks, err := p.Process(context.Background(), &domain.Document{ID: "doc-1"}, nil)
		if err != nil || len(chunks) != 0 {
			t.Errorf("expected no chunks and no error, got %d, %v", len(chunks), err)
		}
	})
}
