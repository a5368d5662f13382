package domain

// Intent classifies a customer query.
type Intent string

// Recognised intents.
const (
	IntentRAG           Intent = "rag_query"
	IntentTransactional Intent = "transactional"
)

// Tool names exposed to routers and MCP clients.
const (
	ToolRAG       = "ecom_rag_tool"
	ToolOrder     = "order_tool"
	ToolReturns   = "returns_tool"
	ToolInventory = "inventory_tool"
)

// Route is the result of intent routing.
type Route struct {
	Intent     Intent  `json:"intent"`
	Tool       string  `json:"tool"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ToolResponse is the envelope returned by every tool handler.
// Data carries tool-specific payloads; Message carries guidance text.
type ToolResponse struct {
	Status  string `json:"status"`
	Tool    string `json:"tool,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Query   string `json:"query,omitempty"`
}

// OK reports whether the response is a success envelope.
func (r ToolResponse) OK() bool {
	return r.Status == StatusSuccess
}
