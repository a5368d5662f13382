package driving

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// IngestService loads documents into the vector store.
type IngestService interface {
	// IngestDir chunks, embeds and inserts every supported file under dir.
	IngestDir(ctx context.Context, dir string) (*domain.IngestReport, error)

	// Seed inserts the built-in e-commerce knowledge base.
	Seed(ctx context.Context) (*domain.IngestReport, error)

	// Clear removes every record from all writable tiers.
	Clear(ctx context.Context) error
}
