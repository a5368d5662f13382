package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure handler implements the interface.
var _ driving.ToolHandler = handler{}

// toolFunc is the body of a tool handler.
type toolFunc func(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse

// safeTool wraps fn so a panic becomes an error envelope labelled with label.
// The tool name and query are filled in on every response.
func safeTool(name, label string, fn toolFunc) toolFunc {
	return func(ctx context.Context, query string, userCtx map[string]any) (resp domain.ToolResponse) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("%s panicked: %v", name, r)
				resp = domain.ErrorResponse(name, query, fmt.Sprintf("%s error: %v", label, r))
			}
			resp.Tool = name
			resp.Query = query
		}()
		return fn(ctx, query, userCtx)
	}
}

// handler adapts a toolFunc to driving.ToolHandler.
type handler struct {
	name string
	fn   toolFunc
}

func (h handler) Name() string { return h.name }

func (h handler) Handle(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse {
	return h.fn(ctx, query, userCtx)
}

// respond builds a success envelope from data, or an error envelope from err.
func respond[T any](tool, query string, data *T, err error) domain.ToolResponse {
	if err != nil {
		return domain.ErrorResponse(tool, query, err.Error())
	}
	return domain.SuccessResponse(tool, query, data)
}

// extractID returns the first match of re in query, upper-cased, or "".
func extractID(re *regexp.Regexp, query string) string {
	return strings.ToUpper(re.FindString(query))
}

func containsWord(q string, words ...string) bool {
	return containsAny(q, words)
}
