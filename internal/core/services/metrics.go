package services

import (
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// nopMetrics is used when no metrics sink is injected.
type nopMetrics struct{}

func (nopMetrics) TierSearch(string, string)   {}
func (nopMetrics) EmbeddingFallback()          {}
func (nopMetrics) SynthesisFallback()          {}
func (nopMetrics) Query(string, time.Duration) {}

func orNop(m driven.RetrievalMetrics) driven.RetrievalMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
