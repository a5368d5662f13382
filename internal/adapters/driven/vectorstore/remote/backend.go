// Package remote provides the Milvus REST v2 vector store tier.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure Backend implements the interfaces.
var (
	_ driven.VectorBackend = (*Backend)(nil)
	_ driven.Prober        = (*Backend)(nil)
)

// Default configuration values.
const (
	DefaultTimeout           = 30 * time.Second
	MinTimeout               = 2 * time.Second
	MaxTimeout               = 60 * time.Second
	DefaultRequestsPerSecond = 5
	ProbeTimeout             = 2 * time.Second
)

// Milvus REST v2 endpoints.
const (
	pathInsert = "/v2/vectordb/entities/insert"
	pathSearch = "/v2/vectordb/entities/search"
	pathDelete = "/v2/vectordb/entities/delete"
	pathStats  = "/v2/vectordb/collections/get_stats"
)

// Collection field names.
const (
	fieldEmbedding = "embedding"
	fieldText      = "text"
	fieldMetadata  = "metadata"
)

// Config holds configuration for the remote tier.
type Config struct {
	// URI is the cluster endpoint, e.g. https://in03-xxx.api.gcp-us-west1.zillizcloud.com.
	URI string

	// Token is the API key or "user:password" sent as a bearer token.
	Token string

	// Collection is the collection name (default: ecommerce_docs).
	Collection string

	// Timeout bounds each request. Clamped to [2s, 60s]; default 30s.
	Timeout time.Duration

	// RequestsPerSecond limits outgoing requests (default: 5).
	RequestsPerSecond float64

	// Dimensions is the expected embedding size. Zero disables the check.
	Dimensions int
}

// Backend is a Milvus collection reached over the REST v2 API.
type Backend struct {
	client     *http.Client
	limiter    *rate.Limiter
	baseURL    string
	host       string
	token      string
	collection string
	dimensions int
}

// response is the common Milvus REST envelope.
type response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type insertRequest struct {
	CollectionName string       `json:"collectionName"`
	Data           []insertItem `json:"data"`
}

type insertItem struct {
	Embedding []float32      `json:"embedding"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
}

type searchRequest struct {
	CollectionName string         `json:"collectionName"`
	Data           [][]float32    `json:"data"`
	AnnsField      string         `json:"annsField"`
	Limit          int            `json:"limit"`
	OutputFields   []string       `json:"outputFields"`
	SearchParams   map[string]any `json:"searchParams"`
}

type searchHit struct {
	ID       json.RawMessage `json:"id"`
	Distance float64         `json:"distance"`
	Text     string          `json:"text"`
	Metadata json.RawMessage `json:"metadata"`
}

type deleteRequest struct {
	CollectionName string `json:"collectionName"`
	Filter         string `json:"filter"`
}

type statsRequest struct {
	CollectionName string `json:"collectionName"`
}

// New creates a remote tier. The endpoint is not contacted until Probe or
// the first request.
func New(cfg Config) (*Backend, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("remote: URI is required: %w", domain.ErrInvalidInput)
	}

	u, err := url.Parse(cfg.URI)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("remote: invalid URI %q: %w", cfg.URI, domain.ErrInvalidInput)
	}

	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollectionName
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Backend{
		client:     &http.Client{Timeout: clampTimeout(cfg.Timeout)},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL:    strings.TrimRight(cfg.URI, "/"),
		host:       hostPort(u),
		token:      cfg.Token,
		collection: cfg.Collection,
		dimensions: cfg.Dimensions,
	}, nil
}

func clampTimeout(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultTimeout
	case d < MinTimeout:
		return MinTimeout
	case d > MaxTimeout:
		return MaxTimeout
	default:
		return d
	}
}

// hostPort returns the dial address for u, filling in the scheme's default port.
func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	port := "443"
	if u.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(u.Hostname(), port)
}

// Name returns the tier name.
func (b *Backend) Name() string {
	return domain.TierRemote
}

// Probe checks that the endpoint accepts TCP connections.
func (b *Backend) Probe(ctx context.Context) error {
	dialer := net.Dialer{Timeout: ProbeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", b.host)
	if err != nil {
		return fmt.Errorf("remote: probe %s: %w: %w", b.host, domain.ErrVectorStoreUnavailable, err)
	}
	return conn.Close()
}

// Insert writes records to the collection. IDs are assigned by the server.
func (b *Backend) Insert(ctx context.Context, records []domain.IndexedRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	items := make([]insertItem, len(records))
	for i, r := range records {
		if err := b.checkEmbedding(r.Embedding); err != nil {
			return 0, err
		}
		meta := r.Metadata
		if meta == nil {
			meta = map[string]any{}
		}
		items[i] = insertItem{Embedding: r.Embedding, Text: r.Text, Metadata: meta}
	}

	var data struct {
		InsertCount int `json:"insertCount"`
	}
	if err := b.post(ctx, pathInsert, insertRequest{CollectionName: b.collection, Data: items}, &data); err != nil {
		return 0, err
	}

	return data.InsertCount, nil
}

// Search runs a cosine ANN search. Queries without an embedding return no results.
func (b *Backend) Search(ctx context.Context, q domain.VectorQuery) ([]domain.SearchResult, error) {
	if len(q.Embedding) == 0 {
		return nil, nil
	}
	if err := b.checkEmbedding(q.Embedding); err != nil {
		return nil, err
	}

	req := searchRequest{
		CollectionName: b.collection,
		Data:           [][]float32{q.Embedding},
		AnnsField:      fieldEmbedding,
		Limit:          q.TopK,
		OutputFields:   []string{fieldText, fieldMetadata},
		SearchParams:   map[string]any{"metricType": "COSINE"},
	}

	var hits []searchHit
	if err := b.post(ctx, pathSearch, req, &hits); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, domain.SearchResult{
			ID:       rawID(h.ID),
			Text:     h.Text,
			Metadata: decodeMetadata(h.Metadata),
			Score:    CosineToScore(h.Distance),
			Tier:     domain.TierRemote,
		})
	}

	return results, nil
}

// Clear deletes every entity in the collection.
func (b *Backend) Clear(ctx context.Context) error {
	return b.post(ctx, pathDelete, deleteRequest{CollectionName: b.collection, Filter: "id >= 0"}, nil)
}

// Stats reports the collection row count.
func (b *Backend) Stats(ctx context.Context) (domain.TierStats, error) {
	stats := domain.TierStats{
		Name:     domain.TierRemote,
		Records:  -1,
		Writable: true,
		Location: b.collection,
	}

	var data struct {
		RowCount int64 `json:"rowCount"`
	}
	if err := b.post(ctx, pathStats, statsRequest{CollectionName: b.collection}, &data); err != nil {
		return stats, err
	}

	stats.Records = data.RowCount
	return stats, nil
}

func (b *Backend) checkEmbedding(v []float32) error {
	if len(v) == 0 {
		return fmt.Errorf("remote: record has no embedding: %w", domain.ErrInvalidInput)
	}
	if b.dimensions > 0 && len(v) != b.dimensions {
		return fmt.Errorf("remote: got %d, want %d: %w", len(v), b.dimensions, domain.ErrDimensionMismatch)
	}
	return nil
}

// post sends body to path and decodes the envelope's data field into out.
func (b *Backend) post(ctx context.Context, path string, body, out any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("remote: rate limiter: %w", err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: send request: %w: %w", domain.ErrVectorStoreUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("remote: %w", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote: status %d: %s: %w", resp.StatusCode, string(respBody), domain.ErrVectorStoreUnavailable)
	}

	var env response
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Code != 0 {
		return fmt.Errorf("remote: %s (code %d): %w", env.Message, env.Code, domain.ErrVectorStoreUnavailable)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// CosineToScore maps a cosine similarity in [-1, 1] onto [0, 1].
func CosineToScore(similarity float64) float64 {
	return domain.ClampScore((similarity + 1) / 2)
}

// rawID renders a numeric or string primary key as a string.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// decodeMetadata accepts the JSON field either as an object or as an
// encoded string, which older clusters return.
func decodeMetadata(raw json.RawMessage) map[string]any {
	meta := map[string]any{}
	if len(raw) == 0 {
		return meta
	}
	if err := json.Unmarshal(raw, &meta); err == nil {
		return meta
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		_ = json.Unmarshal([]byte(encoded), &meta)
	}
	return meta
}
