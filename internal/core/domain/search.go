package domain

// DefaultTopK is the number of passages retrieved per query.
const DefaultTopK = 5

// SourcePreviewLength is the number of characters of a source kept in a response.
const SourcePreviewLength = 200

// IndexedRecord is the persisted unit inside a vector store.
// Records are created on insert and never updated in place.
type IndexedRecord struct {
	// ID is assigned by the store. Empty on insert.
	ID string

	// Embedding is the vector representation of Text.
	Embedding []float32

	// Text is the passage text.
	Text string

	// Metadata is unstructured metadata carried with the record.
	Metadata map[string]any
}

// VectorQuery is the input to a vector store search.
// Text is required by keyword-scoring tiers, Embedding by vector tiers.
type VectorQuery struct {
	Text      string
	Embedding []float32
	TopK      int
}

// SearchResult represents a single ranked hit.
type SearchResult struct {
	// ID is the record identifier within its tier.
	ID string

	// Text is the full passage text.
	Text string

	// Metadata is the record metadata.
	Metadata map[string]any

	// Score is the similarity score in [0, 1], higher is more relevant.
	Score float64

	// Tier names the vector store tier that produced the hit.
	Tier string
}

// ClampScore limits a similarity score to [0, 1].
func ClampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Source is the lossy projection of a SearchResult returned to callers.
type Source struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Metadata        map[string]any `json:"metadata"`
	SimilarityScore float64        `json:"similarity_score"`
}

// QueryResponse is the envelope returned by the retrieval pipeline.
type QueryResponse struct {
	Status  string   `json:"status"`
	Answer  string   `json:"answer,omitempty"`
	Sources []Source `json:"sources,omitempty"`
	Error   string   `json:"error,omitempty"`
	Query   string   `json:"query"`
}

// OK reports whether the response is a success envelope.
func (r QueryResponse) OK() bool {
	return r.Status == StatusSuccess
}

// NewSourceFromResult projects a search result into a response source.
// Text longer than SourcePreviewLength characters is truncated with "...".
func NewSourceFromResult(r SearchResult) Source {
	return Source{
		ID:              r.ID,
		Text:            PreviewText(r.Text, SourcePreviewLength),
		Metadata:        r.Metadata,
		SimilarityScore: r.Score,
	}
}

// PreviewText truncates text to limit characters, appending "..." when cut.
func PreviewText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// IngestReport summarises an ingestion run.
type IngestReport struct {
	Documents int      `json:"documents"`
	Chunks    int      `json:"chunks"`
	Inserted  int      `json:"inserted"`
	Tier      string   `json:"tier"`
	Skipped   []string `json:"skipped,omitempty"`
}
