package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads knowledge base files into the vector store.
type IngestService struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
	embedder driven.EmbeddingService
	store    driven.VectorStore
	seeder   driven.Seeder
	detect   func(path string) string
	source   string
	now      func() time.Time
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithSeeder sets the tier written by Seed. Without one, Seed inserts
// through the vector store.
func WithSeeder(seeder driven.Seeder) IngestOption {
	return func(s *IngestService) {
		s.seeder = seeder
	}
}

// WithDocumentSource overrides the source metadata tag.
func WithDocumentSource(source string) IngestOption {
	return func(s *IngestService) {
		if source != "" {
			s.source = source
		}
	}
}

// NewIngestService creates an ingest service. detect maps a file path to a
// MIME type and returns "" for files that should be ignored.
func NewIngestService(
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	detect func(path string) string,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		registry: registry,
		pipeline: pipeline,
		embedder: embedder,
		store:    store,
		detect:   detect,
		source:   domain.DefaultDocumentSource,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestDir chunks, embeds and inserts every supported file under dir.
// Files that fail to normalise or yield no chunks are listed as skipped.
func (s *IngestService) IngestDir(ctx context.Context, dir string) (*domain.IngestReport, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", dir, domain.ErrInvalidInput)
	}

	logger.Section("Ingest")
	report := &domain.IngestReport{}
	var chunks []domain.TextChunk

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		mimeType := s.detect(path)
		if mimeType == "" || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		docChunks, err := s.processFile(ctx, path, mimeType)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			report.Skipped = append(report.Skipped, path)
			return nil
		}

		logger.Debug("%s: %d chunks", path, len(docChunks))
		report.Documents++
		chunks = append(chunks, docChunks...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	report.Chunks = len(chunks)
	if len(chunks) == 0 {
		return report, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	records, err := s.embed(ctx, texts, func(i int) map[string]any { return chunks[i].Metadata })
	if err != nil {
		return nil, err
	}

	n, tier, err := s.store.Insert(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}

	report.Inserted = n
	report.Tier = tier
	logger.Info("ingested %d documents, %d chunks into %s", report.Documents, n, tier)
	return report, nil
}

// processFile reads, normalises and chunks one file.
func (s *IngestService) processFile(ctx context.Context, path, mimeType string) ([]domain.TextChunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(path)
	raw := &domain.RawDocument{
		URI:      path,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]any{
			domain.MetaFilename:  filename,
			domain.MetaTopic:     domain.TopicForFilename(filename),
			domain.MetaSource:    s.source,
			domain.MetaCreatedAt: s.now().Format(time.RFC3339),
		},
	}

	doc, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise: %w", err)
	}

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks produced (too short?)")
	}
	return chunks, nil
}

// Seed embeds and writes the built-in knowledge base.
func (s *IngestService) Seed(ctx context.Context) (*domain.IngestReport, error) {
	seed := domain.SeedRecords()
	texts := make([]string, len(seed))
	for i, r := range seed {
		texts[i] = r.Text
	}

	records, err := s.embed(ctx, texts, func(i int) map[string]any { return seed[i].Metadata })
	if err != nil {
		return nil, err
	}

	report := &domain.IngestReport{Documents: len(records), Chunks: len(records)}

	if s.seeder != nil {
		n, err := s.seeder.Seed(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		report.Inserted = n
		report.Tier = domain.TierLocal
		if n == 0 {
			report.Skipped = []string{"local database already has records"}
		}
		return report, nil
	}

	n, tier, err := s.store.Insert(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	report.Inserted = n
	report.Tier = tier
	return report, nil
}

// Clear removes every record from all writable tiers.
func (s *IngestService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// embed builds records for texts, taking metadata from meta(i).
func (s *IngestService) embed(ctx context.Context, texts []string, meta func(i int) map[string]any) ([]domain.IndexedRecord, error) {
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(vectors), len(texts))
	}

	records := make([]domain.IndexedRecord, len(texts))
	for i, text := range texts {
		records[i] = domain.IndexedRecord{
			Text:      text,
			Embedding: vectors[i],
			Metadata:  domain.CopyMetadata(meta(i)),
		}
	}
	return records, nil
}
