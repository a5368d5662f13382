// Package local provides the JSON file vector store tier.
//
// The file holds every record with its embedding, but search scores records
// by keyword overlap so the tier answers even when the query embedding came
// from the hash fallback.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorBackend = (*Store)(nil)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "data/vector_database.json"

// Keyword weights added per query word.
const (
	weightText     = 0.3
	weightTopic    = 0.5
	weightFilename = 0.4
)

var schemaFields = []string{"id", "text", "metadata", "embedding"}

// Config holds configuration for the local tier.
type Config struct {
	// Path is the JSON database file (default: data/vector_database.json).
	Path string

	// Collection is recorded in the file header (default: ecommerce_docs).
	Collection string

	// Dimensions is recorded in the schema (default: 384).
	Dimensions int
}

// fileFormat is the on-disk layout.
type fileFormat struct {
	CollectionName string     `json:"collection_name"`
	Schema         fileSchema `json:"schema"`
	Documents      []document `json:"documents"`
	CreatedAt      string     `json:"created_at"`
}

type fileSchema struct {
	Fields       []string `json:"fields"`
	EmbeddingDim int      `json:"embedding_dim"`
}

type document struct {
	ID        int64          `json:"id"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float32      `json:"embedding,omitempty"`
}

// Store is a JSON-file-backed record list.
// Reads are safe for concurrent use; callers serialise Insert, Clear and Seed.
type Store struct {
	mu         sync.RWMutex
	path       string
	collection string
	dimensions int
	createdAt  string
	docs       []document
	now        func() time.Time
}

// Open loads the store at cfg.Path. A missing file yields an empty store;
// the file is created on the first write.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollectionName
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = domain.DefaultEmbeddingDimensions
	}

	s := &Store{
		path:       cfg.Path,
		collection: cfg.Collection,
		dimensions: cfg.Dimensions,
		now:        time.Now,
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("local: read %s: %w", s.path, err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("local: decode %s: %w", s.path, err)
	}

	s.docs = f.Documents
	s.createdAt = f.CreatedAt
	if f.CollectionName != "" {
		s.collection = f.CollectionName
	}
	return nil
}

// Name returns the tier name.
func (s *Store) Name() string {
	return domain.TierLocal
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the database file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Insert appends records, assigning sequential IDs after the current maximum.
func (s *Store) Insert(ctx context.Context, records []domain.IndexedRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.maxID() + 1
	docs := append([]document(nil), s.docs...)
	for _, r := range records {
		docs = append(docs, document{
			ID:        next,
			Text:      r.Text,
			Metadata:  domain.CopyMetadata(r.Metadata),
			Embedding: r.Embedding,
		})
		next++
	}

	if err := s.write(docs); err != nil {
		return 0, err
	}
	s.docs = docs
	return len(records), nil
}

// Seed inserts records into an empty database, including one emptied by
// Clear. It does nothing and returns zero when records are present.
func (s *Store) Seed(ctx context.Context, records []domain.IndexedRecord) (int, error) {
	s.mu.RLock()
	populated := len(s.docs) > 0
	s.mu.RUnlock()

	if populated {
		return 0, nil
	}
	return s.Insert(ctx, records)
}

// Search scores every record by keyword overlap with q.Text.
// Records scoring zero are dropped.
func (s *Store) Search(ctx context.Context, q domain.VectorQuery) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := QueryWords(q.Text)
	if len(words) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ranking uses the raw score; several keyword hits push it past 1,
	// and clamping first would tie them all.
	type hit struct {
		doc   *document
		score float64
	}
	var hits []hit
	for i := range s.docs {
		if score := Score(words, s.docs[i].Text, s.docs[i].Metadata); score > 0 {
			hits = append(hits, hit{doc: &s.docs[i], score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, domain.SearchResult{
			ID:       strconv.FormatInt(h.doc.ID, 10),
			Text:     h.doc.Text,
			Metadata: domain.CopyMetadata(h.doc.Metadata),
			Score:    domain.ClampScore(h.score),
			Tier:     domain.TierLocal,
		})
	}

	if q.TopK > 0 && len(results) > q.TopK {
		results = results[:q.TopK]
	}
	return results, nil
}

// Clear removes every record and rewrites the file.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(nil); err != nil {
		return err
	}
	s.docs = nil
	return nil
}

// Stats reports the record count and file path.
func (s *Store) Stats(_ context.Context) (domain.TierStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.TierStats{
		Name:     domain.TierLocal,
		Records:  int64(len(s.docs)),
		Writable: true,
		Location: s.path,
	}, nil
}

func (s *Store) maxID() int64 {
	var highest int64
	for _, d := range s.docs {
		if d.ID > highest {
			highest = d.ID
		}
	}
	return highest
}

// write replaces the file atomically (caller must hold the write lock).
func (s *Store) write(docs []document) error {
	if s.createdAt == "" {
		s.createdAt = s.now().Format(time.RFC3339)
	}
	if docs == nil {
		docs = []document{}
	}

	data, err := json.MarshalIndent(fileFormat{
		CollectionName: s.collection,
		Schema:         fileSchema{Fields: schemaFields, EmbeddingDim: s.dimensions},
		Documents:      docs,
		CreatedAt:      s.createdAt,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("local: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("local: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vector_database-*.json")
	if err != nil {
		return fmt.Errorf("local: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("local: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("local: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("local: replace %s: %w", s.path, err)
	}
	return nil
}

// QueryWords lowercases text and splits it into words stripped of
// surrounding punctuation.
func QueryWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Score sums the keyword weights of each query word found in the text,
// the topic or the filename. The result is not clamped.
func Score(words []string, text string, metadata map[string]any) float64 {
	text = strings.ToLower(text)
	topic := strings.ToLower(metaString(metadata, domain.MetaTopic))
	filename := strings.ToLower(metaString(metadata, domain.MetaFilename))

	var score float64
	for _, w := range words {
		if strings.Contains(text, w) {
			score += weightText
		}
		if topic != "" && strings.Contains(topic, w) {
			score += weightTopic
		}
		if filename != "" && strings.Contains(filename, w) {
			score += weightFilename
		}
	}
	return score
}

func metaString(metadata map[string]any, key string) string {
	v, _ := metadata[key].(string)
	return v
}
