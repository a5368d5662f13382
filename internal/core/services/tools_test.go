package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

var testNow = time.Date(2024, 11, 28, 12, 0, 0, 0, time.UTC)

func newOrders() *OrderService {
	return NewOrderService(memory.NewOrderStore(memory.SampleOrders(testNow)...))
}

func newReturns() (*ReturnService, *memory.ReturnStore) {
	store := memory.NewReturnStore(memory.SampleReturns(testNow)...)
	svc := NewReturnService(store)
	svc.now = func() time.Time { return testNow }
	return svc, store
}

func newInventory() *InventoryService {
	return NewInventoryService(memory.NewProductStore(memory.SampleProducts()...))
}

func TestSafeTool_RecoversPanic(t *testing.T) {
	fn := safeTool(domain.ToolOrder, "Order tool", func(context.Context, string, map[string]any) domain.ToolResponse {
		panic("store exploded")
	})

	resp := fn(context.Background(), "track ORD-001", nil)

	assert.Equal(t, domain.StatusError, resp.Status)
	assert.Equal(t, "Order tool error: store exploded", resp.Error)
	assert.Equal(t, domain.ToolOrder, resp.Tool)
	assert.Equal(t, "track ORD-001", resp.Query)
}

func TestOrderTool_Handle(t *testing.T) {
	h := newOrders().Handler()
	assert.Equal(t, domain.ToolOrder, h.Name())

	tests := []struct {
		name    string
		query   string
		status  string
		errText string
		message string
	}{
		{"track without id", "track my order", domain.StatusError, "Please provide an order ID to track your order", ""},
		{"status without id", "check my order status", domain.StatusError, "Please provide an order ID to check status", ""},
		{"unknown order", "track ORD-999", domain.StatusError, "Order ORD-999 not found", ""},
		{"no action", "hello about ORD-001", domain.StatusSuccess, "", OrderGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.Handle(context.Background(), tt.query, nil)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.errText, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.query, resp.Query)
		})
	}
}

func TestOrderTool_Track(t *testing.T) {
	resp := newOrders().Handler().Handle(context.Background(), "Track order ord-001 please", nil)
	require.True(t, resp.OK(), resp.Error)

	tracking, ok := resp.Data.(*domain.OrderTracking)
	require.True(t, ok)
	assert.Equal(t, "ORD-001", tracking.OrderID)
	assert.Equal(t, domain.OrderShipped, tracking.CurrentStatus)
	assert.Equal(t, "2024-11-30", tracking.EstimatedDelivery)
	require.Len(t, tracking.Timeline, 4)
	assert.Equal(t, domain.TimelineStep{Step: StepShipped, Status: StepCurrent, Date: "2024-11-27"}, tracking.Timeline[2])
}

func TestOrderTool_Status(t *testing.T) {
	resp := newOrders().Handler().Handle(context.Background(), "status of ORDER-2", nil)
	assert.Equal(t, "Order ORDER-2 not found", resp.Error)

	resp = newOrders().Handler().Handle(context.Background(), "check ORD-003", nil)
	require.True(t, resp.OK())
	details := resp.Data.(*domain.OrderDetails)
	assert.Equal(t, domain.OrderDelivered, details.Status)
	assert.Equal(t, 299.98, details.TotalAmount)
	assert.Equal(t, "2024-11-21", details.OrderDate)
	assert.Len(t, details.Items, 1)
}

func TestTimeline(t *testing.T) {
	placed := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	order := func(status string) *domain.Order {
		return &domain.Order{Status: status, OrderDate: placed, EstimatedDelivery: placed.AddDate(0, 0, 5)}
	}

	tests := []struct {
		status string
		want   []string
	}{
		{domain.OrderProcessing, []string{StepCompleted, StepCurrent, StepPending, StepPending}},
		{domain.OrderShipped, []string{StepCompleted, StepCompleted, StepCurrent, StepPending}},
		{domain.OrderDelivered, []string{StepCompleted, StepCompleted, StepCompleted, StepCompleted}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			timeline := Timeline(order(tt.status))
			require.Len(t, timeline, 4)
			for i, step := range timeline {
				assert.Equal(t, tt.want[i], step.Status)
			}
			assert.Equal(t, StepReceived, timeline[0].Step)
			assert.Equal(t, "2024-11-20", timeline[0].Date)
			assert.Equal(t, "2024-11-25", timeline[3].Date)
		})
	}

	assert.Empty(t, Timeline(order("cancelled")))
}

func TestReturnsTool_Handle(t *testing.T) {
	svc, _ := newReturns()
	h := svc.Handler()

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"status without id", "what is the status of my return", ReturnIDPrompt},
		{"initiate", "I want to start a return", ReturnInstructions},
		{"how to return", "how to return shoes", ReturnInstructions},
		{"policy redirect", "refund rules", ReturnPolicyRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.Handle(context.Background(), tt.query, nil)
			require.True(t, resp.OK())
			assert.Equal(t, domain.GuidanceMessage{Message: tt.message}, resp.Data)
		})
	}
}

func TestReturnsTool_Status(t *testing.T) {
	svc, _ := newReturns()

	resp := svc.Handler().Handle(context.Background(), "return status for ret-002", nil)
	require.True(t, resp.OK(), resp.Error)
	details := resp.Data.(*domain.ReturnDetails)
	assert.Equal(t, "RET-002", details.ReturnID)
	assert.Equal(t, domain.ReturnApproved, details.Status)
	assert.Equal(t, "2024-11-26", details.ReturnDate)

	resp = svc.Handler().Handle(context.Background(), "status RET-777", nil)
	assert.Equal(t, "Return RET-777 not found", resp.Error)
}

func TestReturnService_Initiate(t *testing.T) {
	svc, store := newReturns()

	receipt, err := svc.Initiate("ord-001", "prod-004", "Too small")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^RET-[0-9A-F]{6}$`), receipt.ReturnID)
	assert.Equal(t, domain.ReturnInitiated, receipt.Status)
	assert.Len(t, receipt.NextSteps, 3)

	saved, err := store.Get(receipt.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", saved.OrderID)
	assert.Equal(t, "PROD-004", saved.ProductID)

	// The new return is visible through the tool.
	resp := svc.Handler().Handle(context.Background(), "return status "+receipt.ReturnID, nil)
	assert.True(t, resp.OK())

	_, err = svc.Initiate("", "PROD-001", "x")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReturnService_Policy(t *testing.T) {
	svc, _ := newReturns()
	policy := svc.Policy()
	assert.Equal(t, 30, policy.WindowDays)
	assert.Len(t, policy.Conditions, 3)
	assert.Contains(t, policy.ExcludedItems, "Perishable goods")
}

func TestInventoryTool_Handle(t *testing.T) {
	h := newInventory().Handler()

	t.Run("availability", func(t *testing.T) {
		resp := h.Handle(context.Background(), "is PROD-003 in stock?", nil)
		require.True(t, resp.OK())
		availability := resp.Data.(*domain.ProductAvailability)
		assert.Equal(t, "Smartphone", availability.Name)
		assert.False(t, availability.Available)
	})

	t.Run("availability without id searches", func(t *testing.T) {
		resp := h.Handle(context.Background(), "are running shoes available", nil)
		require.True(t, resp.OK())
		products := resp.Data.([]domain.ProductSummary)
		require.Len(t, products, 1)
		assert.Equal(t, "PROD-004", products[0].ProductID)
	})

	t.Run("details", func(t *testing.T) {
		resp := h.Handle(context.Background(), "details for prod-002", nil)
		require.True(t, resp.OK())
		assert.Equal(t, "Audio", resp.Data.(*domain.ProductDetails).Category)
	})

	t.Run("details without id", func(t *testing.T) {
		resp := h.Handle(context.Background(), "product info", nil)
		assert.Equal(t, "Please provide a product ID for detailed information", resp.Error)
	})

	t.Run("unknown product", func(t *testing.T) {
		resp := h.Handle(context.Background(), "stock of PROD-999", nil)
		assert.Equal(t, "Product PROD-999 not found", resp.Error)
	})

	t.Run("search by category", func(t *testing.T) {
		resp := h.Handle(context.Background(), "find electronics", nil)
		products := resp.Data.([]domain.ProductSummary)
		require.Len(t, products, 2)
		assert.Equal(t, "PROD-001", products[0].ProductID)
		assert.Equal(t, "PROD-003", products[1].ProductID)
	})

	t.Run("no match", func(t *testing.T) {
		resp := h.Handle(context.Background(), "search for kayaks", nil)
		require.True(t, resp.OK())
		assert.Empty(t, resp.Data)
		assert.NotNil(t, resp.Data)
	})
}

func TestInventoryService_SearchAll(t *testing.T) {
	assert.Len(t, newInventory().Search("show all products"), 4)
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"wireless", "headphones"}, SearchTerms("Do you have Wireless Headphones in stock?"))
	assert.Nil(t, SearchTerms("is PROD-001 available"))
}
