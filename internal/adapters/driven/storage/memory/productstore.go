package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure ProductStore implements the interface.
var _ driven.ProductStore = (*ProductStore)(nil)

// ProductStore is an in-memory implementation of driven.ProductStore.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewProductStore creates a product store holding products.
func NewProductStore(products ...domain.Product) *ProductStore {
	s := &ProductStore{
		products: make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// Get retrieves a product by ID.
func (s *ProductStore) Get(id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// List returns all products ordered by ID.
func (s *ProductStore) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
