// Package httpapi provides the HTTP API for coachd.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coachd/internal/coaching"
)

// Generator runs one weekly coaching generation. Satisfied by
// *coaching.Orchestrator.
type Generator interface {
	GenerateWeekly(ctx context.Context, req coaching.Request) (*coaching.WeeklySummary, error)
}

// Server provides HTTP endpoints for coachd.
type Server struct {
	echo      *echo.Echo
	generator Generator
	logger    *zap.Logger
	config    *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
func NewServer(gen Generator, logger *zap.Logger, cfg *Config) (*Server, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8085,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		generator: gen,
		logger:    logger,
		config:    cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.POST("/generate-weekly-coaching", s.handleGenerate)
}

// GenerateRequest is the request body for POST /generate-weekly-coaching.
type GenerateRequest struct {
	Email      string `json:"email"`
	WeekID     string `json:"weekId"`
	UseFixture bool   `json:"useFixture"`
}

// GenerateResponse is the response body for POST /generate-weekly-coaching.
type GenerateResponse struct {
	Success          bool                    `json:"success"`
	Summary          *coaching.WeeklySummary `json:"summary,omitempty"`
	Error            string                  `json:"error,omitempty"`
	ValidationErrors []string                `json:"validationErrors,omitempty"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleGenerate runs one weekly coaching generation.
//
// Status codes:
//   - 400 when email or weekId is missing or the body is malformed
//   - 200 when a summary was generated or deliberately skipped
//   - 422 when every attempt was rejected by validation
//   - 500 on store or generator failures
func (s *Server) handleGenerate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid generate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, GenerateResponse{
			Success: false,
			Error:   "invalid request body",
		})
	}

	summary, err := s.generator.GenerateWeekly(c.Request().Context(), coaching.Request{
		Email:      req.Email,
		WeekID:     req.WeekID,
		UseFixture: req.UseFixture,
	})
	if err != nil {
		if errors.Is(err, coaching.ErrInvalidRequest) {
			return c.JSON(http.StatusBadRequest, GenerateResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		var rejected *coaching.RejectedError
		if errors.As(err, &rejected) {
			return c.JSON(http.StatusUnprocessableEntity, GenerateResponse{
				Success:          false,
				Summary:          rejected.Summary,
				Error:            "generated coaching failed validation",
				ValidationErrors: rejected.ValidationErrors,
			})
		}
		s.logger.Error("weekly generation failed",
			zap.String("email", req.Email),
			zap.String("week_id", req.WeekID),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, GenerateResponse{
			Success: false,
			Error:   "internal error",
		})
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		Success: true,
		Summary: summary,
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
