package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// Ensure RAGTool implements the interface.
var _ driving.ToolHandler = (*RAGTool)(nil)

// Assistant routes queries to the knowledge base or a transactional tool.
type Assistant struct {
	router *Router
	tools  map[string]driving.ToolHandler
}

// NewAssistant creates an assistant dispatching to handlers by name.
// Nil handlers are ignored.
func NewAssistant(router *Router, handlers ...driving.ToolHandler) *Assistant {
	if router == nil {
		router = NewRouter()
	}
	a := &Assistant{
		router: router,
		tools:  make(map[string]driving.ToolHandler, len(handlers)),
	}
	for _, h := range handlers {
		if h != nil {
			a.tools[h.Name()] = h
		}
	}
	return a
}

// Route classifies query without executing it.
func (a *Assistant) Route(query string) domain.Route {
	return a.router.Route(query)
}

// Tool returns the named handler, or nil.
func (a *Assistant) Tool(name string) driving.ToolHandler {
	return a.tools[name]
}

// Assist routes query and runs the chosen tool.
func (a *Assistant) Assist(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse {
	if strings.TrimSpace(query) == "" {
		return domain.ErrorResponse("", query, fmt.Sprintf("%v: query must be a non-empty string", domain.ErrInvalidInput))
	}

	route := a.router.Route(query)
	logger.Debug("routed %q to %s (%s, confidence %.2f)", query, route.Tool, route.Reasoning, route.Confidence)

	tool, ok := a.tools[route.Tool]
	if !ok {
		return domain.ErrorResponse(route.Tool, query, fmt.Sprintf("tool %s is not available", route.Tool))
	}
	if userCtx == nil {
		userCtx = map[string]any{}
	}
	return tool.Handle(ctx, query, userCtx)
}

// RAGTool exposes the retrieval pipeline as a tool handler.
// The answer is carried as the message and the sources as data.
type RAGTool struct {
	retrieval driving.RetrievalService
}

// NewRAGTool creates the ecom_rag_tool handler.
func NewRAGTool(retrieval driving.RetrievalService) *RAGTool {
	return &RAGTool{retrieval: retrieval}
}

// Name returns the tool name.
func (t *RAGTool) Name() string {
	return domain.ToolRAG
}

// Handle runs the retrieval pipeline.
func (t *RAGTool) Handle(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse {
	resp := t.retrieval.ProcessQuery(ctx, query, userCtx)
	return domain.ToolResponse{
		Status:  resp.Status,
		Tool:    domain.ToolRAG,
		Data:    resp.Sources,
		Message: resp.Answer,
		Error:   resp.Error,
		Query:   resp.Query,
	}
}

// FormatResponse renders a tool response as plain text for terminals.
func FormatResponse(resp domain.ToolResponse) string {
	if !resp.OK() {
		return "I encountered an error: " + resp.Error
	}

	switch data := resp.Data.(type) {
	case nil:
		if resp.Message != "" {
			return resp.Message
		}
		return "Request processed successfully."
	case domain.GuidanceMessage:
		return data.Message
	case []domain.Source:
		return resp.Message
	case []domain.ProductSummary:
		return formatProducts(data)
	case *domain.OrderTracking:
		lines := []string{fmt.Sprintf("Order %s is %s (estimated delivery %s)", data.OrderID, data.CurrentStatus, data.EstimatedDelivery)}
		for _, step := range data.Timeline {
			lines = append(lines, fmt.Sprintf("  %-14s %-9s %s", step.Step, step.Status, step.Date))
		}
		return strings.Join(lines, "\n")
	case *domain.OrderDetails:
		return fmt.Sprintf("Order %s: %s, %d item(s), total $%.2f, ordered %s, estimated delivery %s",
			data.OrderID, data.Status, len(data.Items), data.TotalAmount, data.OrderDate, data.EstimatedDelivery)
	case *domain.ReturnDetails:
		return fmt.Sprintf("Return %s for order %s: %s (%s), filed %s",
			data.ReturnID, data.OrderID, data.Status, data.Reason, data.ReturnDate)
	case *domain.ProductAvailability:
		stock := "out of stock"
		if data.Available {
			stock = fmt.Sprintf("in stock (%d)", data.StockQuantity)
		}
		return fmt.Sprintf("%s (%s) is %s at $%.2f", data.Name, data.ProductID, stock, data.Price)
	case *domain.ProductDetails:
		return fmt.Sprintf("%s (%s), %s, $%.2f: %s. Stock: %d",
			data.Name, data.ProductID, data.Category, data.Price, data.Description, data.StockQuantity)
	default:
		return fmt.Sprintf("%v", data)
	}
}

func formatProducts(products []domain.ProductSummary) string {
	switch len(products) {
	case 0:
		return "No results found for your query."
	case 1:
		return "Found: " + formatProduct(products[0])
	}

	lines := []string{fmt.Sprintf("Found %d results:", len(products))}
	for _, p := range products[:min(len(products), 5)] {
		lines = append(lines, "• "+formatProduct(p))
	}
	return strings.Join(lines, "\n")
}

func formatProduct(p domain.ProductSummary) string {
	stock := "out of stock"
	if p.Available {
		stock = "in stock"
	}
	return fmt.Sprintf("%s %s ($%.2f, %s)", p.ProductID, p.Name, p.Price, stock)
}
