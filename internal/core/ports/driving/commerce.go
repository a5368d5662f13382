package driving

import "github.com/custodia-labs/shopdesk/internal/core/domain"

// OrderService looks up customer orders.
type OrderService interface {
	// Track returns the fulfilment timeline of an order.
	Track(id string) (*domain.OrderTracking, error)

	// Status returns the details of an order.
	Status(id string) (*domain.OrderDetails, error)
}

// ReturnsService manages product returns.
type ReturnsService interface {
	// Status returns the details of a return.
	Status(id string) (*domain.ReturnDetails, error)

	// Initiate records a new return for a product of an order.
	Initiate(orderID, productID, reason string) (*domain.ReturnReceipt, error)

	// Policy returns the return policy.
	Policy() domain.ReturnPolicy
}

// InventoryService answers product catalogue queries.
type InventoryService interface {
	// Availability reports whether a product is in stock.
	Availability(id string) (*domain.ProductAvailability, error)

	// Details returns the full record of a product.
	Details(id string) (*domain.ProductDetails, error)

	// Search matches products against a free-text query.
	Search(query string) []domain.ProductSummary
}
