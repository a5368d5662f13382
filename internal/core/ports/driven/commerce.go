package driven

import "github.com/custodia-labs/shopdesk/internal/core/domain"

// OrderStore holds customer orders.
type OrderStore interface {
	// Get returns the order with the given ID or domain.ErrNotFound.
	Get(id string) (*domain.Order, error)

	// List returns all orders ordered by ID.
	List() []domain.Order
}

// ReturnStore holds return requests.
type ReturnStore interface {
	// Get returns the return with the given ID or domain.ErrNotFound.
	Get(id string) (*domain.Return, error)

	// Save stores or replaces a return.
	Save(ret domain.Return) error

	// List returns all returns ordered by ID.
	List() []domain.Return
}

// ProductStore holds the product catalogue.
type ProductStore interface {
	// Get returns the product with the given ID or domain.ErrNotFound.
	Get(id string) (*domain.Product, error)

	// List returns all products ordered by ID.
	List() []domain.Product
}
