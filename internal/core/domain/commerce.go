package domain

import "time"

// Order statuses used by the mock order store.
const (
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
)

// OrderItem is a single line of an order.
type OrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is a customer order.
type Order struct {
	ID                string
	CustomerEmail     string
	Status            string
	Items             []OrderItem
	TotalAmount       float64
	OrderDate         time.Time
	EstimatedDelivery time.Time
}

// TimelineStep is one stage of order fulfilment.
type TimelineStep struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

// Product is an inventory item.
type Product struct {
	ID            string
	Name          string
	Price         float64
	StockQuantity int
	Category      string
	Description   string
}

// Available reports whether the product is in stock.
func (p Product) Available() bool {
	return p.StockQuantity > 0
}

// Return statuses.
const (
	ReturnInitiated  = "initiated"
	ReturnProcessing = "processing"
	ReturnApproved   = "approved"
)

// Return is a product return request.
type Return struct {
	ID         string
	OrderID    string
	ProductID  string
	Reason     string
	Status     string
	ReturnDate time.Time
}

// ReturnPolicy summarises the store's return rules.
type ReturnPolicy struct {
	WindowDays    int      `json:"return_window_days"`
	Conditions    []string `json:"conditions"`
	ExcludedItems []string `json:"excluded_items"`
}

// DateLayout is the date format used in tool payloads.
const DateLayout = "2006-01-02"
