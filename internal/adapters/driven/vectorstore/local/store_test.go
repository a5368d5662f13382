package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "data", "vector_database.json")})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC) }
	return s
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := openTemp(t)
	n, err := s.Seed(context.Background(), domain.SeedRecords())
	require.NoError(t, err)
	require.Equal(t, 7, n)
	return s
}

func TestOpen_MissingFile(t *testing.T) {
	s := openTemp(t)

	assert.False(t, s.Exists())
	assert.Equal(t, domain.TierLocal, s.Name())

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Records)
	assert.True(t, stats.Writable)
	assert.Equal(t, s.Path(), stats.Location)
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Open(Config{Path: path})
	assert.Error(t, err)
}

func TestSeed_WritesFileFormat(t *testing.T) {
	s := seeded(t)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var f fileFormat
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, domain.DefaultCollectionName, f.CollectionName)
	assert.Equal(t, []string{"id", "text", "metadata", "embedding"}, f.Schema.Fields)
	assert.Equal(t, 384, f.Schema.EmbeddingDim)
	assert.Equal(t, "2024-11-28T10:00:00Z", f.CreatedAt)
	require.Len(t, f.Documents, 7)
	for i, d := range f.Documents {
		assert.Equal(t, int64(i+1), d.ID)
	}

	// A second seed leaves the existing file alone.
	n, err := s.Seed(context.Background(), domain.SeedRecords())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearch_ReturnPolicyRanksFirst(t *testing.T) {
	s := seeded(t)

	results, err := s.Search(context.Background(), domain.VectorQuery{Text: "What is your return policy?", TopK: 5})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	top := results[0]
	assert.Equal(t, "returns", top.Metadata[domain.MetaTopic])
	assert.Equal(t, "return_policy.pdf", top.Metadata[domain.MetaFilename])
	assert.Equal(t, 1.0, top.Score)
	assert.Equal(t, domain.TierLocal, top.Tier)
}

func TestSearch_TopResultIsIdempotent(t *testing.T) {
	s := seeded(t)
	q := domain.VectorQuery{Text: "shipping options express", TopK: 3}

	first, err := s.Search(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	for range 5 {
		again, err := s.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, first[0].ID, again[0].ID)
		assert.Equal(t, first[0].Score, again[0].Score)
	}
}

func TestSearch_RanksOnUnclampedScore(t *testing.T) {
	s := openTemp(t)

	// Both records score above 1 for this query, so both report 1.0;
	// the stronger match must still come first.
	_, err := s.Insert(context.Background(), []domain.IndexedRecord{
		{
			Text:     "What is included: your order ships free; see our shipping policy.",
			Metadata: map[string]any{domain.MetaFilename: "shipping_policy.pdf", domain.MetaTopic: "shipping"},
		},
		{
			Text:     "Our return policy: what is returned must be unused. Your refund arrives in a week.",
			Metadata: map[string]any{domain.MetaFilename: "return_policy.pdf", domain.MetaTopic: "returns"},
		},
	})
	require.NoError(t, err)

	q := "What is your return policy?"
	words := QueryWords(q)
	require.Greater(t, Score(words, "What is included: your order ships free; see our shipping policy.",
		map[string]any{domain.MetaFilename: "shipping_policy.pdf", domain.MetaTopic: "shipping"}), 1.0)

	results, err := s.Search(context.Background(), domain.VectorQuery{Text: q, TopK: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "return_policy.pdf", results[0].Metadata[domain.MetaFilename])
	assert.Equal(t, "shipping_policy.pdf", results[1].Metadata[domain.MetaFilename])
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 1.0, results[1].Score)
}

func TestSearch_DuplicateInsertKeepsTopResult(t *testing.T) {
	s := seeded(t)
	q := domain.VectorQuery{Text: "What is your return policy?", TopK: 5}

	before, err := s.Search(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, before)

	n, err := s.Insert(context.Background(), domain.SeedRecords())
	require.NoError(t, err)
	require.Equal(t, 7, n)

	after, err := s.Search(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, after)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, "return_policy.pdf", after[0].Metadata[domain.MetaFilename])
}

func TestSearch_OrderingAndLimits(t *testing.T) {
	s := seeded(t)

	results, err := s.Search(context.Background(), domain.VectorQuery{Text: "warranty shipping", TopK: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.Greater(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	s := seeded(t)

	results, err := s.Search(context.Background(), domain.VectorQuery{Text: "zzzqqq", TopK: 5})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search(context.Background(), domain.VectorQuery{Text: "?!", TopK: 5})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_CancelledContext(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, domain.VectorQuery{Text: "returns", TopK: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInsert_AssignsIDsAfterMax(t *testing.T) {
	s := seeded(t)

	n, err := s.Insert(context.Background(), []domain.IndexedRecord{
		{Text: "Gift cards never expire.", Metadata: map[string]any{domain.MetaTopic: "payments"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	reopened, err := Open(Config{Path: s.Path()})
	require.NoError(t, err)

	results, err := reopened.Search(context.Background(), domain.VectorQuery{Text: "gift cards", TopK: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "8", results[0].ID)
}

func TestClear(t *testing.T) {
	s := seeded(t)

	require.NoError(t, s.Clear(context.Background()))

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Records)
	assert.True(t, s.Exists())

	reopened, err := Open(Config{Path: s.Path()})
	require.NoError(t, err)
	stats, err = reopened.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Records)
}

func TestSeed_AfterClear(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.Clear(context.Background()))

	n, err := s.Seed(context.Background(), domain.SeedRecords())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	results, err := s.Search(context.Background(), domain.VectorQuery{Text: "return policy", TopK: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.TierLocal, results[0].Tier)
}

func TestSearch_ConcurrentReads(t *testing.T) {
	s := seeded(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Search(context.Background(), domain.VectorQuery{Text: "returns", TopK: 3})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestQueryWords(t *testing.T) {
	assert.Equal(t, []string{"what's", "the", "return", "policy"}, QueryWords("  What's the RETURN policy?! "))
	assert.Empty(t, QueryWords("... --"))
}

func TestScore(t *testing.T) {
	meta := map[string]any{domain.MetaTopic: "returns", domain.MetaFilename: "return_policy.pdf"}

	tests := []struct {
		name  string
		words []string
		text  string
		want  float64
	}{
		{"text only", []string{"refund"}, "Refunds are quick", 0.3},
		{"topic filename and text", []string{"return"}, "return items", 1.2},
		{"filename only", []string{"policy"}, "nothing", 0.4},
		{"no match", []string{"zebra"}, "nothing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.words, tt.text, meta), 1e-9)
		})
	}
}
