// Package hash provides a deterministic embedding derived from SHA-256.
//
// The vectors carry no semantic meaning. They keep the pipeline running
// when no embedding model is reachable: identical text always maps to the
// identical unit vector, so exact-match lookups still work.
package hash

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// ModelName identifies hash vectors in stats and logs.
const ModelName = "sha256-hash"

// EmbeddingService computes hash embeddings. It never fails.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a hash embedder producing vectors of the given size.
// Non-positive sizes use domain.DefaultEmbeddingDimensions.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = domain.DefaultEmbeddingDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed returns the hash vector for text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	return Vector(text, s.dimensions), nil
}

// EmbedBatch returns one hash vector per text.
func (s *EmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = Vector(text, s.dimensions)
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the pseudo-model name.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// Vector expands the SHA-256 digest of text into an L2-normalised vector.
// Block i is sha256(digest || i) and yields eight values, each a big-endian
// uint32 scaled into [-1, 1].
func Vector(text string, dimensions int) []float32 {
	digest := sha256.Sum256([]byte(text))

	values := make([]float64, dimensions)
	var (
		seed    [sha256.Size + 4]byte
		counter uint32
	)
	copy(seed[:], digest[:])

	for i := 0; i < dimensions; counter++ {
		binary.BigEndian.PutUint32(seed[sha256.Size:], counter)
		block := sha256.Sum256(seed[:])

		for off := 0; off+4 <= len(block) && i < dimensions; off += 4 {
			u := binary.BigEndian.Uint32(block[off : off+4])
			values[i] = float64(u)/math.MaxUint32*2 - 1
			i++
		}
	}

	var norm float64
	for _, v := range values {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, dimensions)
	for i, v := range values {
		if norm > 0 {
			v /= norm
		}
		out[i] = float32(v)
	}
	return out
}
