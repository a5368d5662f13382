package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/normalisers"
	"github.com/custodia-labs/shopdesk/internal/postprocessors"
	"github.com/custodia-labs/shopdesk/internal/postprocessors/chunker"
)

// mockSeeder implements driven.Seeder for testing.
type mockSeeder struct {
	records []domain.IndexedRecord
	exists  bool
}

func (m *mockSeeder) Seed(_ context.Context, records []domain.IndexedRecord) (int, error) {
	if m.exists {
		return 0, nil
	}
	m.records = records
	return len(records), nil
}

func longText(sentences int) string {
	var b strings.Builder
	for i := range sentences {
		fmt.Fprintf(&b, "Sentence number %d explains a detail of our store policy. ", i)
	}
	return b.String()
}

func newIngest(store *mockVectorStore, opts ...IngestOption) *IngestService {
	pipeline := postprocessors.NewPipeline(chunker.New(chunker.WithMinWords(5), chunker.WithMaxWords(60), chunker.WithOverlap(10)))
	svc := NewIngestService(normalisers.NewDefaultRegistry(), pipeline, &mockEmbedder{}, store, normalisers.MIMETypeForPath, opts...)
	svc.now = func() time.Time { return time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC) }
	return svc
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "return_policy.txt", longText(20))
	writeFile(t, dir, "guides/shipping_guide.md", "# Shipping\n\n"+longText(3))
	writeFile(t, dir, "notes.pdf", "binary")
	writeFile(t, dir, "tiny.txt", "Hi.")
	writeFile(t, dir, ".hidden/secret.txt", longText(5))

	store := &mockVectorStore{}
	report, err := newIngest(store).IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Documents)
	assert.Greater(t, report.Chunks, 2)
	assert.Equal(t, report.Chunks, report.Inserted)
	assert.Equal(t, domain.TierLocal, report.Tier)
	assert.Equal(t, []string{filepath.Join(dir, "tiny.txt")}, report.Skipped)

	topics := map[string]bool{}
	for _, r := range store.inserted {
		assert.Len(t, r.Embedding, 3)
		assert.Equal(t, domain.DefaultDocumentSource, r.Metadata[domain.MetaSource])
		assert.Equal(t, "2024-11-28T10:00:00Z", r.Metadata[domain.MetaCreatedAt])
		topics[r.Metadata[domain.MetaTopic].(string)] = true
	}
	assert.Equal(t, map[string]bool{"returns": true, "shipping": true}, topics)
}

func TestIngestDir_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := newIngest(&mockVectorStore{}).IngestDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "faq.txt", longText(3))
		_, err := newIngest(&mockVectorStore{}).IngestDir(context.Background(), filepath.Join(dir, "faq.txt"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("insert failure", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "faq.txt", longText(3))
		_, err := newIngest(&mockVectorStore{insertErr: errors.New("disk full")}).IngestDir(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("empty directory", func(t *testing.T) {
		store := &mockVectorStore{}
		report, err := newIngest(store).IngestDir(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, report.Documents)
		assert.Empty(t, store.inserted)
	})
}

func TestIngestDir_CustomSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "warranty.txt", longText(3))

	store := &mockVectorStore{}
	_, err := newIngest(store, WithDocumentSource("policy_documents")).IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.NotEmpty(t, store.inserted)
	assert.Equal(t, "policy_documents", store.inserted[0].Metadata[domain.MetaSource])
	assert.Equal(t, "warranties", store.inserted[0].Metadata[domain.MetaTopic])
}

func TestSeed(t *testing.T) {
	t.Run("through seeder", func(t *testing.T) {
		seeder := &mockSeeder{}
		store := &mockVectorStore{}
		report, err := newIngest(store, WithSeeder(seeder)).Seed(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 7, report.Inserted)
		assert.Equal(t, domain.TierLocal, report.Tier)
		require.Len(t, seeder.records, 7)
		assert.NotEmpty(t, seeder.records[0].Embedding)
		assert.Equal(t, "return_policy.pdf", seeder.records[0].Metadata[domain.MetaFilename])
		assert.Empty(t, store.inserted)
	})

	t.Run("existing database", func(t *testing.T) {
		report, err := newIngest(&mockVectorStore{}, WithSeeder(&mockSeeder{exists: true})).Seed(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Inserted)
		assert.NotEmpty(t, report.Skipped)
	})

	t.Run("through store", func(t *testing.T) {
		store := &mockVectorStore{}
		report, err := newIngest(store).Seed(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, report.Inserted)
		assert.Len(t, store.inserted, 7)
	})
}

func TestIngestClear(t *testing.T) {
	store := &mockVectorStore{}
	require.NoError(t, newIngest(store).Clear(context.Background()))
	assert.True(t, store.cleared)
}
