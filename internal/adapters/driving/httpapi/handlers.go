package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// RAGRequest is the body of POST /api/v1/rag.
type RAGRequest struct {
	Query   string         `json:"query"`
	Context map[string]any `json:"context,omitempty"`
}

// AssistRequest is the body of POST /api/v1/assist and /api/v1/route.
type AssistRequest struct {
	Query       string         `json:"query"`
	UserContext map[string]any `json:"user_context,omitempty"`
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":       "ok",
		"vector_store": s.ports.Retrieval.Stats(c.Request().Context()).State,
	})
}

// badQuery explains a body that could not be bound, such as a numeric query.
func badQuery(err error) string {
	detail := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail = fmt.Sprint(he.Message)
	}
	return fmt.Sprintf("%v: query must be a non-empty string (%s)", domain.ErrInvalidInput, detail)
}

// rag answers a knowledge-base question. Envelope errors are returned with
// 200. A body that cannot be bound is a 400, still carrying the envelope.
func (s *Server) rag(c echo.Context) error {
	var req RAGRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.QueryResponse{
			Status: domain.StatusError,
			Error:  badQuery(err),
			Query:  req.Query,
		})
	}

	resp := s.ports.Retrieval.ProcessQuery(c.Request().Context(), req.Query, req.Context)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) assist(c echo.Context) error {
	var req AssistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse("", req.Query, badQuery(err)))
	}

	resp := s.ports.Assistant.Assist(c.Request().Context(), req.Query, req.UserContext)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) route(c echo.Context) error {
	var req AssistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse("", req.Query, badQuery(err)))
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse("", "",
			fmt.Sprintf("%v: query must be a non-empty string", domain.ErrInvalidInput)))
	}

	return c.JSON(http.StatusOK, s.ports.Assistant.Route(req.Query))
}

func (s *Server) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.ports.Retrieval.Stats(c.Request().Context()))
}
