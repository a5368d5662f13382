package driven

import "time"

// Search outcomes recorded per tier.
const (
	OutcomeHit   = "hit"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
	OutcomeSkip  = "skipped"
)

// RetrievalMetrics records pipeline counters.
type RetrievalMetrics interface {
	// TierSearch records one search attempt against a tier.
	TierSearch(tier, outcome string)

	// EmbeddingFallback records a switch to the hash embedder.
	EmbeddingFallback()

	// SynthesisFallback records a passage-fallback answer.
	SynthesisFallback()

	// Query records a completed retrieval request.
	Query(status string, elapsed time.Duration)
}
