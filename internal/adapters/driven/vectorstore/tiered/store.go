// Package tiered composes vector store tiers into a single store that falls
// through to the next tier on error or empty results.
package tiered

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/metrics"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultProbeTimeout bounds the connectivity check made by Connect.
const DefaultProbeTimeout = 2 * time.Second

// Store iterates its tiers in priority order. Tiers implementing
// driven.Prober are gated on the CONNECTED state.
type Store struct {
	mu           sync.RWMutex
	state        domain.StoreState
	tiers        []driven.VectorBackend
	metrics      driven.RetrievalMetrics
	dimensions   int
	probeTimeout time.Duration
}

// Option configures the tiered store.
type Option func(*Store)

// WithMetrics records per-tier search outcomes.
func WithMetrics(m driven.RetrievalMetrics) Option {
	return func(s *Store) {
		s.metrics = metrics.OrNop(m)
	}
}

// WithDimensions sets the embedding dimension reported in stats.
func WithDimensions(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.dimensions = n
		}
	}
}

// WithProbeTimeout overrides the Connect probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.probeTimeout = d
		}
	}
}

// New creates a store over tiers, highest priority first. Nil tiers are ignored.
// The store starts UNINITIALIZED; call Connect before use.
func New(tiers []driven.VectorBackend, opts ...Option) *Store {
	s := &Store{
		state:        domain.StateUninitialized,
		metrics:      metrics.Nop{},
		dimensions:   domain.DefaultEmbeddingDimensions,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, t := range tiers {
		if t != nil {
			s.tiers = append(s.tiers, t)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect probes every tier that needs it. All probes passing gives
// CONNECTED; any failure, or no probed tier at all, gives DEGRADED.
func (s *Store) Connect(ctx context.Context) domain.StoreState {
	s.setState(domain.StateConnecting)

	probed := 0
	for _, t := range s.tiers {
		p, ok := t.(driven.Prober)
		if !ok {
			continue
		}
		probed++

		probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
		err := p.Probe(probeCtx)
		cancel()

		if err != nil {
			logger.Warn("vector store tier %s unreachable, continuing degraded: %v", t.Name(), err)
			s.setState(domain.StateDegraded)
			return domain.StateDegraded
		}
	}

	if probed == 0 {
		logger.Info("no remote vector store configured, using local tiers")
		s.setState(domain.StateDegraded)
		return domain.StateDegraded
	}

	logger.Info("connected to remote vector store")
	s.setState(domain.StateConnected)
	return domain.StateConnected
}

// State returns the current connection state.
func (s *Store) State() domain.StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) setState(state domain.StoreState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// degrade moves a CONNECTED store to DEGRADED. There is no way back.
func (s *Store) degrade(tier string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateConnected {
		logger.Warn("vector store tier %s failed, degrading: %v", tier, err)
		s.state = domain.StateDegraded
	}
}

// eligible reports whether tier t may be used in the current state.
func (s *Store) eligible(t driven.VectorBackend) bool {
	if _, ok := t.(driven.Prober); ok {
		return s.State() == domain.StateConnected
	}
	return true
}

// Search returns the first non-empty result list, in tier priority order.
// An empty result with a nil error means every tier came up empty.
func (s *Store) Search(ctx context.Context, q domain.VectorQuery) ([]domain.SearchResult, error) {
	if strings.TrimSpace(q.Text) == "" && q.Embedding == nil {
		return nil, fmt.Errorf("query needs text or an embedding: %w", domain.ErrInvalidInput)
	}
	if q.TopK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d: %w", q.TopK, domain.ErrInvalidInput)
	}

	for _, t := range s.tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := t.Name()
		if !s.eligible(t) {
			s.metrics.TierSearch(name, driven.OutcomeSkip)
			continue
		}

		results, err := t.Search(ctx, q)
		if err != nil {
			s.metrics.TierSearch(name, driven.OutcomeError)
			if _, ok := t.(driven.Prober); ok {
				s.degrade(name, err)
			} else {
				logger.Warn("vector store tier %s search failed: %v", name, err)
			}
			continue
		}
		if len(results) == 0 {
			s.metrics.TierSearch(name, driven.OutcomeEmpty)
			logger.Warn("vector store tier %s returned no results", name)
			continue
		}

		s.metrics.TierSearch(name, driven.OutcomeHit)
		logger.Debug("vector store tier %s returned %d results", name, len(results))
		return normalise(results, name, q.TopK), nil
	}

	return nil, nil
}

// normalise sorts descending on the scores the tier reported, then clamps
// them and truncates to topK. Sorting first keeps scores above 1 ranked.
func normalise(results []domain.SearchResult, tier string, topK int) []domain.SearchResult {
	out := slices.Clone(results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	for i := range out {
		out[i].Score = domain.ClampScore(out[i].Score)
		if out[i].Tier == "" {
			out[i].Tier = tier
		}
	}

	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

// Insert writes records to the highest-priority eligible writable tier and
// returns the count and the tier name.
func (s *Store) Insert(ctx context.Context, records []domain.IndexedRecord) (int, string, error) {
	var lastErr error

	for _, t := range s.tiers {
		if !s.eligible(t) {
			continue
		}

		name := t.Name()
		n, err := t.Insert(ctx, records)
		if errors.Is(err, domain.ErrBackendReadOnly) {
			continue
		}
		if err != nil {
			lastErr = err
			if _, ok := t.(driven.Prober); ok {
				s.degrade(name, err)
			} else {
				logger.Warn("vector store tier %s insert failed: %v", name, err)
			}
			continue
		}

		return n, name, nil
	}

	if lastErr != nil {
		return 0, "", fmt.Errorf("no tier accepted the insert: %w", lastErr)
	}
	return 0, "", fmt.Errorf("no writable tier: %w", domain.ErrVectorStoreUnavailable)
}

// Clear empties every eligible writable tier. Errors from individual
// tiers are joined.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, t := range s.tiers {
		if !s.eligible(t) {
			continue
		}
		if err := t.Clear(ctx); err != nil && !errors.Is(err, domain.ErrBackendReadOnly) {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Stats reports the state, the active tier and every tier's counts.
func (s *Store) Stats(ctx context.Context) domain.StoreStats {
	stats := domain.StoreStats{
		State:     s.State().String(),
		Dimension: s.dimensions,
		Tiers:     make([]domain.TierStats, 0, len(s.tiers)),
	}

	for _, t := range s.tiers {
		if stats.ActiveTier == "" && s.eligible(t) {
			stats.ActiveTier = t.Name()
		}
		if !s.eligible(t) {
			stats.Tiers = append(stats.Tiers, domain.TierStats{Name: t.Name(), Records: -1, Err: "not connected"})
			continue
		}

		ts, err := t.Stats(ctx)
		if err != nil {
			ts.Name = t.Name()
			ts.Records = -1
			ts.Err = err.Error()
		}
		stats.Tiers = append(stats.Tiers, ts)
	}

	return stats
}

// Tiers returns the tier names in priority order.
func (s *Store) Tiers() []string {
	names := make([]string, len(s.tiers))
	for i, t := range s.tiers {
		names[i] = t.Name()
	}
	return names
}
