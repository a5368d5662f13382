// Package defaults provides the last-resort vector store tier: three
// built-in passages that always answer.
package defaults

import (
	"context"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure Backend implements the interface.
var _ driven.VectorBackend = (*Backend)(nil)

// Location names the tier in stats output.
const Location = "built-in"

var passages = []domain.SearchResult{
	{
		ID: "1",
		Text: "Our return policy allows returns within 30 days of purchase. Items must be in original " +
			"condition with tags attached. Refunds are processed within 5-7 business days.",
		Metadata: map[string]any{
			domain.MetaFilename: "return_policy.pdf",
			domain.MetaTopic:    "returns",
			domain.MetaSource:   "policy_documents",
		},
		Score: 0.85,
	},
	{
		ID: "2",
		Text: "For order tracking, please use your order number and email address on our tracking page. " +
			"Orders typically ship within 1-2 business days and arrive within 5-7 days.",
		Metadata: map[string]any{
			domain.MetaFilename: "shipping_guide.pdf",
			domain.MetaTopic:    "shipping",
			domain.MetaSource:   "customer_service",
		},
		Score: 0.78,
	},
	{
		ID: "3",
		Text: "Our customer service team is available Monday-Friday 9AM-6PM EST. You can reach us via " +
			"email at support@ecommerce.com or phone at 1-800-SHOP-NOW.",
		Metadata: map[string]any{
			domain.MetaFilename: "contact_info.pdf",
			domain.MetaTopic:    "support",
			domain.MetaSource:   "customer_service",
		},
		Score: 0.72,
	},
}

// Backend serves the built-in passages. It is read-only.
type Backend struct{}

// New creates the defaults tier.
func New() *Backend {
	return &Backend{}
}

// Name returns the tier name.
func (b *Backend) Name() string {
	return domain.TierDefaults
}

// Insert always fails with domain.ErrBackendReadOnly.
func (b *Backend) Insert(context.Context, []domain.IndexedRecord) (int, error) {
	return 0, domain.ErrBackendReadOnly
}

// Search returns the passages whose text contains any query word, or the
// first passage when none do. It never returns an empty list.
func (b *Backend) Search(_ context.Context, q domain.VectorQuery) ([]domain.SearchResult, error) {
	words := strings.Fields(strings.ToLower(q.Text))

	var results []domain.SearchResult
	for _, p := range passages {
		if containsAny(strings.ToLower(p.Text), words) {
			results = append(results, clone(p))
		}
	}
	if len(results) == 0 {
		results = []domain.SearchResult{clone(passages[0])}
	}

	if q.TopK > 0 && len(results) > q.TopK {
		results = results[:q.TopK]
	}
	return results, nil
}

// Clear is a no-op.
func (b *Backend) Clear(context.Context) error {
	return nil
}

// Stats reports the fixed passage count.
func (b *Backend) Stats(context.Context) (domain.TierStats, error) {
	return domain.TierStats{
		Name:     domain.TierDefaults,
		Records:  int64(len(passages)),
		Writable: false,
		Location: Location,
	}, nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func clone(r domain.SearchResult) domain.SearchResult {
	r.Metadata = domain.CopyMetadata(r.Metadata)
	r.Tier = domain.TierDefaults
	return r
}
