package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// Keyword sets used for routing. Phrases match as case-insensitive substrings.
var (
	ragKeywords = []string{
		"policy", "rules", "faq", "how to", "guide", "manual",
		"terms", "details", "brochure", "information", "help",
		"what is", "explain", "describe", "documentation", "who pays",
		"what happens", "how do i", "can i cancel", "return shipping",
	}

	transactionalKeywords = []string{
		"track order", "order status", "my order #", "order number",
		"tracking number", "order #", "return status for order",
		"refund status for order", "cancel order #",
	}

	inventoryTerms = []string{"product", "inventory", "stock", "availability", "available", "prod-", "search", "find", "item"}
	orderTerms     = []string{"order", "track", "status", "check"}
	returnTerms    = []string{"return", "refund", "exchange"}
)

// defaultConfidence is reported when no keyword matched.
const defaultConfidence = 0.5

// Router classifies queries by keyword heuristics.
// Knowledge-base keywords take priority over transactional ones, and
// anything unmatched goes to the knowledge base.
type Router struct{}

// NewRouter creates a router.
func NewRouter() *Router {
	return &Router{}
}

// Route classifies query.
func (r *Router) Route(query string) domain.Route {
	q := strings.ToLower(query)

	if n := countMatches(q, ragKeywords); n > 0 {
		return domain.Route{
			Intent:     domain.IntentRAG,
			Tool:       domain.ToolRAG,
			Confidence: confidence(n, len(ragKeywords)),
			Reasoning:  fmt.Sprintf("Detected %d RAG-related keywords", n),
		}
	}

	if n := countMatches(q, transactionalKeywords); n > 0 {
		return domain.Route{
			Intent:     domain.IntentTransactional,
			Tool:       transactionalTool(q),
			Confidence: confidence(n, len(transactionalKeywords)),
			Reasoning:  fmt.Sprintf("Detected %d transactional keywords", n),
		}
	}

	return domain.Route{
		Intent:     domain.IntentRAG,
		Tool:       domain.ToolRAG,
		Confidence: defaultConfidence,
		Reasoning:  "Defaulting to RAG for open-ended query",
	}
}

// transactionalTool picks the handler for a transactional query.
// Product terms win over order terms, which win over return terms.
func transactionalTool(q string) string {
	switch {
	case containsAny(q, inventoryTerms):
		return domain.ToolInventory
	case containsAny(q, orderTerms):
		return domain.ToolOrder
	case containsAny(q, returnTerms):
		return domain.ToolReturns
	default:
		return domain.ToolInventory
	}
}

func confidence(matches, total int) float64 {
	return min(float64(matches)/float64(total)*5, 1)
}

func countMatches(q string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(q, k) {
			n++
		}
	}
	return n
}

func containsAny(q string, terms []string) bool {
	return countMatches(q, terms) > 0
}
