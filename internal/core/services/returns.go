package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// Guidance returned by the returns tool.
const (
	ReturnIDPrompt = "To check return status, I need your return ID (format: RET-XXXXXX). " +
		"You can find this in your return confirmation email."

	ReturnInstructions = "To start a return: 1) Go to our returns page, 2) Enter your order number and email, " +
		"3) Select items to return and reason, 4) Print the return label, 5) Package and ship the item back. " +
		"You'll receive a return ID for tracking."

	ReturnPolicyRedirect = "For return policy questions, please ask about our return policy and I'll provide " +
		"detailed information from our knowledge base."
)

// Ensure ReturnService implements the interface.
var _ driving.ReturnsService = (*ReturnService)(nil)

var returnIDPattern = regexp.MustCompile(`(?i)RET-[A-Z0-9]+`)

// DefaultReturnPolicy is the store's return policy.
func DefaultReturnPolicy() domain.ReturnPolicy {
	return domain.ReturnPolicy{
		WindowDays: 30,
		Conditions: []string{
			"Items must be in original condition",
			"Tags must be attached",
			"Original packaging preferred",
		},
		ExcludedItems: []string{
			"Personalized items",
			"Perishable goods",
			"Underwear and swimwear",
		},
	}
}

// returnNextSteps are sent with every new return.
var returnNextSteps = []string{
	"Package the item in original packaging",
	"Print the return label (check email)",
	"Drop off at any authorized location",
}

// ReturnService answers return status queries and creates returns.
type ReturnService struct {
	returns driven.ReturnStore
	policy  domain.ReturnPolicy
	now     func() time.Time
	newID   func() string
}

// NewReturnService creates a return service over returns.
func NewReturnService(returns driven.ReturnStore) *ReturnService {
	return &ReturnService{
		returns: returns,
		policy:  DefaultReturnPolicy(),
		now:     time.Now,
		newID:   newReturnID,
	}
}

// Handler returns the returns_tool handler.
func (s *ReturnService) Handler() driving.ToolHandler {
	return handler{name: domain.ToolReturns, fn: safeTool(domain.ToolReturns, "Returns tool", s.handle)}
}

// handle covers status lookups and initiation guidance. Policy questions
// are redirected to the knowledge base.
func (s *ReturnService) handle(_ context.Context, query string, _ map[string]any) domain.ToolResponse {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "status") && containsWord(q, "ret-", "return"):
		id := extractID(returnIDPattern, query)
		if id == "" {
			return domain.SuccessResponse(domain.ToolReturns, query, domain.GuidanceMessage{Message: ReturnIDPrompt})
		}
		details, err := s.Status(id)
		return respond(domain.ToolReturns, query, details, err)
	case containsWord(q, "initiate", "start", "how to return"):
		return domain.SuccessResponse(domain.ToolReturns, query, domain.GuidanceMessage{Message: ReturnInstructions})
	default:
		return domain.SuccessResponse(domain.ToolReturns, query, domain.GuidanceMessage{Message: ReturnPolicyRedirect})
	}
}

// Status returns the details of a return.
func (s *ReturnService) Status(id string) (*domain.ReturnDetails, error) {
	ret, err := s.returns.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Return %s %w", id, err) //nolint:staticcheck // user-facing message
		}
		return nil, err
	}
	return &domain.ReturnDetails{
		ReturnID:   ret.ID,
		OrderID:    ret.OrderID,
		Status:     ret.Status,
		Reason:     ret.Reason,
		ReturnDate: ret.ReturnDate.Format(domain.DateLayout),
	}, nil
}

// Initiate records a new return and returns its receipt.
func (s *ReturnService) Initiate(orderID, productID, reason string) (*domain.ReturnReceipt, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: order and product IDs are required", domain.ErrInvalidInput)
	}

	ret := domain.Return{
		ID:         s.newID(),
		OrderID:    strings.ToUpper(orderID),
		ProductID:  strings.ToUpper(productID),
		Reason:     reason,
		Status:     domain.ReturnInitiated,
		ReturnDate: s.now(),
	}
	if err := s.returns.Save(ret); err != nil {
		return nil, fmt.Errorf("save return: %w", err)
	}

	return &domain.ReturnReceipt{
		ReturnID:  ret.ID,
		Status:    ret.Status,
		NextSteps: append([]string(nil), returnNextSteps...),
	}, nil
}

// Policy returns the return policy.
func (s *ReturnService) Policy() domain.ReturnPolicy {
	return s.policy
}

// newReturnID builds a RET- identifier from six random hex digits.
func newReturnID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RET-" + strings.ToUpper(hex[:6])
}
