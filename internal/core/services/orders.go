package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// Timeline step labels and states.
const (
	StepReceived   = "Order Received"
	StepProcessing = "Processing"
	StepShipped    = "Shipped"
	StepDelivered  = "Delivered"

	StepCompleted = "completed"
	StepCurrent   = "current"
	StepPending   = "pending"
)

// OrderGreeting is returned when a query names no order action.
const OrderGreeting = "I can help you track orders or check order status. Please provide your order ID."

// Ensure OrderService implements the interface.
var _ driving.OrderService = (*OrderService)(nil)

var orderIDPattern = regexp.MustCompile(`(?i)ORD(ER)?-\d+`)

// OrderService answers order tracking and status queries.
type OrderService struct {
	orders driven.OrderStore
}

// NewOrderService creates an order service over orders.
func NewOrderService(orders driven.OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

// Handler returns the order_tool handler.
func (s *OrderService) Handler() driving.ToolHandler {
	return handler{name: domain.ToolOrder, fn: safeTool(domain.ToolOrder, "Order tool", s.handle)}
}

func (s *OrderService) handle(_ context.Context, query string, _ map[string]any) domain.ToolResponse {
	q := strings.ToLower(query)
	id := extractID(orderIDPattern, query)

	switch {
	case strings.Contains(q, "track"):
		if id == "" {
			return domain.ErrorResponse(domain.ToolOrder, query, "Please provide an order ID to track your order")
		}
		tracking, err := s.Track(id)
		return respond(domain.ToolOrder, query, tracking, err)
	case containsWord(q, "status", "check"):
		if id == "" {
			return domain.ErrorResponse(domain.ToolOrder, query, "Please provide an order ID to check status")
		}
		details, err := s.Status(id)
		return respond(domain.ToolOrder, query, details, err)
	default:
		return domain.ToolResponse{Status: domain.StatusSuccess, Message: OrderGreeting}
	}
}

// Track returns the fulfilment timeline of an order.
func (s *OrderService) Track(id string) (*domain.OrderTracking, error) {
	order, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &domain.OrderTracking{
		OrderID:           order.ID,
		CurrentStatus:     order.Status,
		Timeline:          Timeline(order),
		EstimatedDelivery: order.EstimatedDelivery.Format(domain.DateLayout),
	}, nil
}

// Status returns the details of an order.
func (s *OrderService) Status(id string) (*domain.OrderDetails, error) {
	order, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &domain.OrderDetails{
		OrderID:           order.ID,
		Status:            order.Status,
		Items:             order.Items,
		TotalAmount:       order.TotalAmount,
		OrderDate:         order.OrderDate.Format(domain.DateLayout),
		EstimatedDelivery: order.EstimatedDelivery.Format(domain.DateLayout),
	}, nil
}

func (s *OrderService) get(id string) (*domain.Order, error) {
	order, err := s.orders.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("Order %s %w", id, err) //nolint:staticcheck // user-facing message
	}
	return order, err
}

// Timeline derives the fulfilment steps of an order from its status.
// Step dates count from the order date; delivery uses the estimate.
// Unknown statuses have no timeline.
func Timeline(order *domain.Order) []domain.TimelineStep {
	var states []string
	switch order.Status {
	case domain.OrderProcessing:
		states = []string{StepCompleted, StepCurrent, StepPending, StepPending}
	case domain.OrderShipped:
		states = []string{StepCompleted, StepCompleted, StepCurrent, StepPending}
	case domain.OrderDelivered:
		states = []string{StepCompleted, StepCompleted, StepCompleted, StepCompleted}
	default:
		return []domain.TimelineStep{}
	}

	dates := []string{
		order.OrderDate.Format(domain.DateLayout),
		order.OrderDate.AddDate(0, 0, 1).Format(domain.DateLayout),
		order.OrderDate.AddDate(0, 0, 2).Format(domain.DateLayout),
		order.EstimatedDelivery.Format(domain.DateLayout),
	}

	steps := []string{StepReceived, StepProcessing, StepShipped, StepDelivered}
	timeline := make([]domain.TimelineStep, len(steps))
	for i := range steps {
		timeline[i] = domain.TimelineStep{Step: steps[i], Status: states[i], Date: dates[i]}
	}
	return timeline
}
