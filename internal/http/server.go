// Package http provides the HTTP server, router setup, and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accesslinkHTTP "github.com/afrireads/bookgate/internal/accesslink/http"
	authHTTP "github.com/afrireads/bookgate/internal/auth/http"
	"github.com/afrireads/bookgate/internal/secureview"
)

// Server represents the main HTTP server
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig holds the handlers and middleware the router is built from.
// Nil middleware entries disable the corresponding concern.
type RouterConfig struct {
	AccessLinkHandler *accesslinkHTTP.AccessLinkHandler
	TokenHandler      *authHTTP.TokenHandler
	SecureViewHandler *secureview.Handler

	AuthMiddleware       gin.HandlerFunc
	ReaderAuthMiddleware gin.HandlerFunc
	RateLimitMiddleware  gin.HandlerFunc
	MetricsMiddleware    gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string
}

// SetupRouter builds the Gin router with all routes and middleware.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Service client authentication endpoint.
	v1.POST("/token", cfg.TokenHandler.IssueHandler)

	// Share links are presented by anonymous readers; the token itself is
	// the credential.
	v1.GET("/access-links/:token/view", cfg.SecureViewHandler.ShareViewHandler)

	// Reader endpoints authenticated by the storefront-issued JWT.
	reader := v1.Group("")
	reader.Use(cfg.ReaderAuthMiddleware)
	reader.GET("/books/:id/secure-view", cfg.SecureViewHandler.SecureViewHandler)

	// Service endpoints for the storefront backend.
	service := v1.Group("")
	service.Use(cfg.AuthMiddleware)
	if cfg.RateLimitMiddleware != nil {
		service.Use(cfg.RateLimitMiddleware)
	}
	service.POST("/access-links", cfg.AccessLinkHandler.CreateHandler)
	service.GET("/access-links/:token", cfg.AccessLinkHandler.ValidateHandler)
	service.DELETE("/access-links/:token", cfg.AccessLinkHandler.RevokeHandler)
	service.GET("/users/:user_id/access-links", cfg.AccessLinkHandler.ListByUserHandler)

	s.router = router
}

// GetRouter returns the router for testing purposes.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// each backing component.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check: database ping failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
