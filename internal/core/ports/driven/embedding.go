package driven

import "context"

// EmbeddingService maps text to fixed-size vectors.
//
// The vector size is a deployment-wide constant: every store tier is
// created for it, so switching to a model with a different Dimensions()
// means rebuilding the index.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	Dimensions() int
	ModelName() string

	// Ping fails when the backing model cannot serve requests.
	Ping(ctx context.Context) error

	Close() error
}
