package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// It is the only retrieval error that reaches callers directly.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown normaliser or processor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates no text-generation backend is configured.
	// Answer synthesis falls back to the top passage.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding model could not be reached.
	// Embeddings fall back to the deterministic hash vector.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates a vector store tier is unreachable
	// or misconfigured.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrBackendReadOnly indicates a write was sent to a tier that cannot store records.
	ErrBackendReadOnly = errors.New("vector store tier is read-only")

	// ErrDimensionMismatch indicates an embedding does not match the store's dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
