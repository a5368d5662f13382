package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/custodia-labs/shopdesk/internal/logger"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server is the shopdesk HTTP API.
type Server struct {
	ports *Ports
	echo  *echo.Echo
}

// NewServer creates the server and mounts its routes.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger)

	s := &Server{ports: ports, echo: e}
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.healthz)

	if s.ports.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.ports.Metrics))
	}

	if s.ports.MCP != nil {
		s.echo.Any("/mcp", echo.WrapHandler(s.ports.MCP))
	}

	api := s.echo.Group("/api/v1")
	api.POST("/rag", s.rag)
	api.GET("/stats", s.stats)
	if s.ports.Assistant != nil {
		api.POST("/assist", s.assist)
		api.POST("/route", s.route)
	}
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.echo.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// requestLogger logs one line per request in verbose mode.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		logger.Debug("%s %s %d %s id=%s",
			req.Method, req.URL.Path, c.Response().Status, time.Since(start).Round(time.Millisecond),
			c.Response().Header().Get(echo.HeaderXRequestID))
		return err
	}
}

// errorHandler renders every error as {"error": msg}.
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if !c.Response().Committed {
		_ = c.JSON(code, map[string]string{"error": msg})
	}
}
