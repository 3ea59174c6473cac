// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls; step gating and submission rules live below it.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/application/service"
	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter.
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	handlers   *Handlers
	onboarding *service.OnboardingService
	logger     *zap.Logger
}

// NewServer creates a new HTTP server wired to the given handlers.
func NewServer(config ServerConfig, handlers *Handlers, onboarding *service.OnboardingService, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:     config,
		router:     gin.New(),
		handlers:   handlers,
		onboarding: onboarding,
		logger:     logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware())
}

// loggingMiddleware logs every request with latency and status.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.String("latency", time.Since(start).String()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware allows the form frontend to call the API from another origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// stepGuardMiddleware rejects navigation to steps whose predecessor is not
// complete, answering 403 with the furthest step the user may reach. Malformed
// step params fall through to the handler's own parsing.
func (s *Server) stepGuardMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := strconv.Atoi(c.Param("step"))
		if err != nil || !entity.Step(n).Valid() {
			c.Next()
			return
		}

		step := entity.Step(n)
		if !s.onboarding.Wizard().CanAccessStep(step) {
			s.logger.Info("Navigation blocked by step guard",
				zap.Int("step", n),
				zap.Int("furthest", int(s.onboarding.Wizard().FurthestReachableStep())))
			c.AbortWithStatusJSON(http.StatusForbidden, Response{
				Success: false,
				Error:   "etapa não liberada",
				Data:    gin.H{"furthestReachableStep": int(s.onboarding.Wizard().FurthestReachableStep())},
			})
			return
		}
		c.Next()
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/onboarding", s.handlers.GetState)
		api.PUT("/onboarding/steps/:step/draft", s.handlers.SaveDraft)
		api.POST("/onboarding/steps/:step", s.handlers.SubmitStep)
		api.POST("/onboarding/navigate/:step", s.stepGuardMiddleware(), s.handlers.Navigate)
		api.POST("/onboarding/reset", s.handlers.Reset)
		api.POST("/onboarding/export", s.handlers.ExportSummary)
		api.POST("/documents/upload", s.handlers.UploadDocuments)
		api.GET("/cep/:code", s.handlers.LookupCEP)
	}
}

// Start starts the HTTP server and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing).
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address.
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
