package memory

import (
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// deliveryDays is the estimated delivery lead time of sample orders.
const deliveryDays = 5

// SampleOrders returns the demo orders, dated relative to now.
func SampleOrders(now time.Time) []domain.Order {
	order := func(id, email, status string, item domain.OrderItem, total float64, daysAgo int) domain.Order {
		placed := now.AddDate(0, 0, -daysAgo)
		return domain.Order{
			ID:                id,
			CustomerEmail:     email,
			Status:            status,
			Items:             []domain.OrderItem{item},
			TotalAmount:       total,
			OrderDate:         placed,
			EstimatedDelivery: placed.AddDate(0, 0, deliveryDays),
		}
	}

	return []domain.Order{
		order("ORD-001", "john@example.com", domain.OrderShipped,
			domain.OrderItem{Product: "Laptop", Quantity: 1, Price: 999.99}, 999.99, 3),
		order("ORD-002", "jane@example.com", domain.OrderProcessing,
			domain.OrderItem{Product: "Phone", Quantity: 1, Price: 599.99}, 599.99, 1),
		order("ORD-003", "bob@example.com", domain.OrderDelivered,
			domain.OrderItem{Product: "Headphones", Quantity: 2, Price: 149.99}, 299.98, 7),
	}
}

// SampleReturns returns the demo returns, dated two days before now.
func SampleReturns(now time.Time) []domain.Return {
	date := now.AddDate(0, 0, -2)
	return []domain.Return{
		{ID: "RET-001", OrderID: "ORD-001", ProductID: "PROD-123", Reason: "Wrong size", Status: domain.ReturnProcessing, ReturnDate: date},
		{ID: "RET-002", OrderID: "ORD-002", ProductID: "PROD-456", Reason: "Damaged item", Status: domain.ReturnApproved, ReturnDate: date},
	}
}

// SampleProducts returns the demo catalogue.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "PROD-001", Name: "Gaming Laptop", Price: 1299.99, StockQuantity: 15,
			Category: "Electronics", Description: "High-performance gaming laptop with RTX graphics",
		},
		{
			ID: "PROD-002", Name: "Wireless Headphones", Price: 199.99, StockQuantity: 50,
			Category: "Audio", Description: "Premium noise-canceling wireless headphones",
		},
		{
			ID: "PROD-003", Name: "Smartphone", Price: 699.99, StockQuantity: 0,
			Category: "Electronics", Description: "Latest smartphone with advanced camera",
		},
		{
			ID: "PROD-004", Name: "Running Shoes", Price: 129.99, StockQuantity: 25,
			Category: "Sports", Description: "Professional running shoes with premium comfort",
		},
	}
}
