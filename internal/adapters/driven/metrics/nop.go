// Package metrics provides RetrievalMetrics implementations.
package metrics

import (
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

var _ driven.RetrievalMetrics = Nop{}

// Nop discards all measurements. Used by one-shot CLI commands and tests.
type Nop struct{}

func (Nop) TierSearch(string, string)   {}
func (Nop) EmbeddingFallback()          {}
func (Nop) SynthesisFallback()          {}
func (Nop) Query(string, time.Duration) {}

// OrNop returns m, or Nop when m is nil.
func OrNop(m driven.RetrievalMetrics) driven.RetrievalMetrics {
	if m == nil {
		return Nop{}
	}
	return m
}
