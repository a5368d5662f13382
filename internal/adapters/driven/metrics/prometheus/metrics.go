// Package prometheus records retrieval pipeline metrics with the Prometheus client.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

const namespace = "shopdesk"

var _ driven.RetrievalMetrics = (*Metrics)(nil)

// Metrics implements RetrievalMetrics on a private registry.
type Metrics struct {
	registry           *prometheus.Registry
	tierSearches       *prometheus.CounterVec
	embeddingFallbacks prometheus.Counter
	synthesisFallbacks prometheus.Counter
	queries            *prometheus.CounterVec
	queryDuration      prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tierSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tier_searches_total",
			Help:      "Vector store search attempts by tier and outcome.",
		}, []string{"tier", "outcome"}),
		embeddingFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_fallbacks_total",
			Help:      "Embeddings served by the hash embedder after a provider failure.",
		}),
		synthesisFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_fallbacks_total",
			Help:      "Answers built from the top passage instead of the LLM.",
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Retrieval requests by envelope status.",
		}, []string{"status"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "End-to-end retrieval latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.tierSearches,
		m.embeddingFallbacks,
		m.synthesisFallbacks,
		m.queries,
		m.queryDuration,
	)
	return m
}

func (m *Metrics) TierSearch(tier, outcome string) {
	m.tierSearches.WithLabelValues(tier, outcome).Inc()
}

func (m *Metrics) EmbeddingFallback() {
	m.embeddingFallbacks.Inc()
}

func (m *Metrics) SynthesisFallback() {
	m.synthesisFallbacks.Inc()
}

func (m *Metrics) Query(status string, elapsed time.Duration) {
	m.queries.WithLabelValues(status).Inc()
	m.queryDuration.Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
