package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	reply    string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
	calls    int
	panics   bool
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	if m.panics {
		panic("provider crashed")
	}
	m.messages = messages
	m.opts = opts
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockEmbedder implements driven.EmbeddingService for testing.
type mockEmbedder struct {
	vector []float32
	err    error
	panics bool
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.panics {
		panic("embedder exploded")
	}
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	if m.vector != nil {
		return m.vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 3 }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	results   []domain.SearchResult
	searchErr error
	insertErr error
	clearErr  error
	queries   []domain.VectorQuery
	inserted  []domain.IndexedRecord
	cleared   bool
}

func (m *mockVectorStore) Insert(_ context.Context, records []domain.IndexedRecord) (int, string, error) {
	if m.insertErr != nil {
		return 0, "", m.insertErr
	}
	m.inserted = append(m.inserted, records...)
	return len(records), domain.TierLocal, nil
}

func (m *mockVectorStore) Search(_ context.Context, q domain.VectorQuery) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, q)
	return m.results, m.searchErr
}

func (m *mockVectorStore) Clear(_ context.Context) error {
	m.cleared = true
	return m.clearErr
}

func (m *mockVectorStore) Stats(_ context.Context) domain.StoreStats {
	return domain.StoreStats{State: domain.StateDegraded.String(), ActiveTier: domain.TierLocal}
}

func (m *mockVectorStore) State() domain.StoreState { return domain.StateDegraded }

// countingMetrics implements driven.RetrievalMetrics for testing.
type countingMetrics struct {
	mu         sync.Mutex
	synthesis  int
	embeddings int
	statuses   []string
}

func (c *countingMetrics) TierSearch(string, string) {}
func (c *countingMetrics) EmbeddingFallback()        { c.embeddings++ }
func (c *countingMetrics) SynthesisFallback()        { c.synthesis++ }

func (c *countingMetrics) Query(status string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, status)
}

func passages(texts ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, len(texts))
	for i, t := range texts {
		out[i] = domain.SearchResult{
			ID:       string(rune('1' + i)),
			Text:     t,
			Metadata: map[string]any{domain.MetaTopic: "returns"},
			Score:    0.9 - float64(i)*0.1,
		}
	}
	return out
}
