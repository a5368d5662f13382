package domain

// Payloads carried in ToolResponse.Data by the transactional tools.

// OrderTracking is the order_tool tracking payload.
type OrderTracking struct {
	OrderID           string         `json:"order_id"`
	CurrentStatus     string         `json:"current_status"`
	Timeline          []TimelineStep `json:"timeline"`
	EstimatedDelivery string         `json:"estimated_delivery"`
}

// OrderDetails is the order_tool status payload.
type OrderDetails struct {
	OrderID           string      `json:"order_id"`
	Status            string      `json:"status"`
	Items             []OrderItem `json:"items"`
	TotalAmount       float64     `json:"total_amount"`
	OrderDate         string      `json:"order_date"`
	EstimatedDelivery string      `json:"estimated_delivery"`
}

// ReturnDetails is the returns_tool status payload.
type ReturnDetails struct {
	ReturnID   string `json:"return_id"`
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	ReturnDate string `json:"return_date"`
}

// ReturnReceipt is returned when a return is initiated.
type ReturnReceipt struct {
	ReturnID  string   `json:"return_id"`
	Status    string   `json:"status"`
	NextSteps []string `json:"next_steps"`
}

// ProductAvailability is the inventory_tool availability payload.
type ProductAvailability struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Available     bool    `json:"available"`
	StockQuantity int     `json:"stock_quantity"`
	Price         float64 `json:"price"`
}

// ProductSummary is one inventory_tool search hit.
type ProductSummary struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Available     bool    `json:"available"`
	StockQuantity int     `json:"stock_quantity"`
}

// ProductDetails is the inventory_tool details payload.
type ProductDetails struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Available     bool    `json:"available"`
}

// GuidanceMessage wraps guidance text returned as data.
type GuidanceMessage struct {
	Message string `json:"message"`
}

// SuccessResponse builds a success envelope carrying data.
func SuccessResponse(tool, query string, data any) ToolResponse {
	return ToolResponse{Status: StatusSuccess, Tool: tool, Query: query, Data: data}
}

// ErrorResponse builds an error envelope.
func ErrorResponse(tool, query, msg string) ToolResponse {
	return ToolResponse{Status: StatusError, Tool: tool, Query: query, Error: msg}
}
