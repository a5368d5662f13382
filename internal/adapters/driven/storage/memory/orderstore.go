package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure OrderStore implements the interface.
var _ driven.OrderStore = (*OrderStore)(nil)

// OrderStore is an in-memory implementation of driven.OrderStore.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewOrderStore creates an order store holding orders.
func NewOrderStore(orders ...domain.Order) *OrderStore {
	s := &OrderStore{
		orders: make(map[string]domain.Order, len(orders)),
	}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

// Get retrieves an order by ID.
func (s *OrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &order, nil
}

// List returns all orders ordered by ID.
func (s *OrderStore) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
