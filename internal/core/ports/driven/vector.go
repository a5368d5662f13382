package driven

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// VectorBackend is one tier of the vector store.
// Tiers are interchangeable and iterated in priority order by the tiered adapter.
type VectorBackend interface {
	// Name returns the tier name (remote, local, defaults).
	Name() string

	// Insert stores records and returns how many were written.
	// Read-only tiers return domain.ErrBackendReadOnly.
	Insert(ctx context.Context, records []domain.IndexedRecord) (int, error)

	// Search returns up to q.TopK results ordered by descending score.
	Search(ctx context.Context, q domain.VectorQuery) ([]domain.SearchResult, error)

	// Clear removes every record owned by the tier.
	Clear(ctx context.Context) error

	// Stats reports the tier's record count and location.
	Stats(ctx context.Context) (domain.TierStats, error)
}

// Prober is implemented by tiers that need a connectivity check before use.
type Prober interface {
	// Probe returns nil when the backend is reachable.
	Probe(ctx context.Context) error
}

// VectorStore is the tiered adapter seen by core services.
type VectorStore interface {
	Insert(ctx context.Context, records []domain.IndexedRecord) (int, string, error)
	Search(ctx context.Context, q domain.VectorQuery) ([]domain.SearchResult, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) domain.StoreStats
	State() domain.StoreState
}

// Seeder is implemented by tiers that can be initialised with a built-in
// knowledge base.
type Seeder interface {
	// Seed writes records only if the tier holds no database yet.
	// It returns the number of records written.
	Seed(ctx context.Context, records []domain.IndexedRecord) (int, error)
}
