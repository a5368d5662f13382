package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure ReturnStore implements the interface.
var _ driven.ReturnStore = (*ReturnStore)(nil)

// ReturnStore is an in-memory implementation of driven.ReturnStore.
type ReturnStore struct {
	mu      sync.RWMutex
	returns map[string]domain.Return
}

// NewReturnStore creates a return store holding returns.
func NewReturnStore(returns ...domain.Return) *ReturnStore {
	s := &ReturnStore{
		returns: make(map[string]domain.Return, len(returns)),
	}
	for _, r := range returns {
		s.returns[r.ID] = r
	}
	return s
}

// Get retrieves a return by ID.
func (s *ReturnStore) Get(id string) (*domain.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret, ok := s.returns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ret, nil
}

// Save stores or updates a return.
func (s *ReturnStore) Save(ret domain.Return) error {
	if ret.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.returns[ret.ID] = ret
	return nil
}

// List returns all returns ordered by ID.
func (s *ReturnStore) List() []domain.Return {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Return, 0, len(s.returns))
	for _, r := range s.returns {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
