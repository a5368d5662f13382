package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// Ensure InventoryService implements the interface.
var _ driving.InventoryService = (*InventoryService)(nil)

var productIDPattern = regexp.MustCompile(`(?i)PROD-\d+`)

// searchStopwords are dropped from product search queries.
var searchStopwords = map[string]bool{
	"search": true, "find": true, "show": true, "product": true, "products": true,
	"item": true, "items": true, "stock": true, "available": true, "availability": true,
	"inventory": true, "the": true, "for": true, "and": true, "any": true, "you": true,
	"have": true, "with": true, "what": true, "are": true, "all": true, "me": true,
	"do": true, "is": true, "in": true, "a": true, "an": true, "of": true, "your": true,
}

// InventoryService answers product availability, search and details queries.
type InventoryService struct {
	products driven.ProductStore
}

// NewInventoryService creates an inventory service over products.
func NewInventoryService(products driven.ProductStore) *InventoryService {
	return &InventoryService{products: products}
}

// Handler returns the inventory_tool handler.
func (s *InventoryService) Handler() driving.ToolHandler {
	return handler{name: domain.ToolInventory, fn: safeTool(domain.ToolInventory, "Inventory tool", s.handle)}
}

func (s *InventoryService) handle(_ context.Context, query string, _ map[string]any) domain.ToolResponse {
	q := strings.ToLower(query)
	id := extractID(productIDPattern, query)

	switch {
	case containsWord(q, "availability", "stock", "available"):
		if id != "" {
			availability, err := s.Availability(id)
			return respond(domain.ToolInventory, query, availability, err)
		}
	case containsWord(q, "search", "find"):
		// searched below
	case containsWord(q, "details", "info"):
		if id == "" {
			return domain.ErrorResponse(domain.ToolInventory, query, "Please provide a product ID for detailed information")
		}
		details, err := s.Details(id)
		return respond(domain.ToolInventory, query, details, err)
	}

	return domain.SuccessResponse(domain.ToolInventory, query, s.Search(query))
}

// Availability reports whether a product is in stock.
func (s *InventoryService) Availability(id string) (*domain.ProductAvailability, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &domain.ProductAvailability{
		ProductID:     p.ID,
		Name:          p.Name,
		Available:     p.Available(),
		StockQuantity: p.StockQuantity,
		Price:         p.Price,
	}, nil
}

// Details returns the full record of a product.
func (s *InventoryService) Details(id string) (*domain.ProductDetails, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &domain.ProductDetails{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		Description:   p.Description,
		Available:     p.Available(),
	}, nil
}

// Search matches products whose name, category or description contains the
// whole query or any of its significant words. A query with no significant
// words lists the whole catalogue. The result is never nil.
func (s *InventoryService) Search(query string) []domain.ProductSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	terms := SearchTerms(q)

	matches := []domain.ProductSummary{}
	for _, p := range s.products.List() {
		haystack := strings.ToLower(p.Name + " " + p.Category + " " + p.Description)
		if len(terms) > 0 && !strings.Contains(haystack, q) && !containsAny(haystack, terms) {
			continue
		}
		matches = append(matches, domain.ProductSummary{
			ProductID:     p.ID,
			Name:          p.Name,
			Price:         p.Price,
			Category:      p.Category,
			Available:     p.Available(),
			StockQuantity: p.StockQuantity,
		})
	}
	return matches
}

// SearchTerms lower-cases query and drops stopwords and product IDs.
func SearchTerms(query string) []string {
	var terms []string
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for _, w := range words {
		w = strings.Trim(w, "-")
		if len(w) < 3 || searchStopwords[w] || productIDPattern.MatchString(w) {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

func (s *InventoryService) get(id string) (*domain.Product, error) {
	p, err := s.products.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("Product %s %w", id, err) //nolint:staticcheck // user-facing message
	}
	return p, err
}
