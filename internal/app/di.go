// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	accesslinkHTTP "github.com/afrireads/bookgate/internal/accesslink/http"
	linkService "github.com/afrireads/bookgate/internal/accesslink/service"
	linkUsecase "github.com/afrireads/bookgate/internal/accesslink/usecase"
	authHTTP "github.com/afrireads/bookgate/internal/auth/http"
	authService "github.com/afrireads/bookgate/internal/auth/service"
	authUsecase "github.com/afrireads/bookgate/internal/auth/usecase"
	"github.com/afrireads/bookgate/internal/config"
	"github.com/afrireads/bookgate/internal/database"
	"github.com/afrireads/bookgate/internal/http"
	"github.com/afrireads/bookgate/internal/metrics"
	"github.com/afrireads/bookgate/internal/secureview"
	"github.com/afrireads/bookgate/internal/worker"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Access links
	accessLinkRepo         linkUsecase.AccessLinkRepository
	bookRepo               linkUsecase.BookRepository
	userRepo               linkUsecase.UserRepository
	accessLinkTokenService linkService.TokenService
	accessLinkUseCase      linkUsecase.AccessLinkUseCase
	accessLinkHandler      *accesslinkHTTP.AccessLinkHandler

	// Auth
	clientRepo       authUsecase.ClientRepository
	tokenRepo        authUsecase.TokenRepository
	secretService    authService.SecretService
	authTokenService authService.TokenService
	clientUseCase    authUsecase.ClientUseCase
	tokenUseCase     authUsecase.TokenUseCase
	tokenHandler     *authHTTP.TokenHandler

	// Secure view
	urlSigner         *secureview.BlobURLSigner
	secureViewHandler *secureview.Handler

	// Servers and workers
	httpServer    *http.Server
	metricsServer *http.MetricsServer
	sweeper       *worker.Sweeper

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	accessLinkRepoInit    sync.Once
	bookRepoInit          sync.Once
	userRepoInit          sync.Once
	linkTokenServiceInit  sync.Once
	secretServiceInit     sync.Once
	authTokenServiceInit  sync.Once
	accessLinkUseCaseInit sync.Once
	accessLinkHandlerInit sync.Once
	clientRepoInit        sync.Once
	tokenRepoInit         sync.Once
	clientUseCaseInit     sync.Once
	tokenUseCaseInit      sync.Once
	tokenHandlerInit      sync.Once
	urlSignerInit         sync.Once
	secureViewHandlerInit sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	sweeperInit           sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		c.db = db
	})
	if err, exists := c.initErrors["db"]; exists {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err, exists := c.initErrors["txManager"]; exists {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if err, exists := c.initErrors["metricsProvider"]; exists {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder, or nil when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = bm
	})
	if err, exists := c.initErrors["businessMetrics"]; exists {
		return nil, err
	}
	return c.businessMetrics, nil
}

// URLSigner returns the signed URL minter for the document bucket.
func (c *Container) URLSigner(ctx context.Context) (*secureview.BlobURLSigner, error) {
	c.urlSignerInit.Do(func() {
		signer, err := secureview.NewBlobURLSigner(ctx, c.config.DocumentBucketURL, c.config.SignedURLTTL)
		if err != nil {
			c.initErrors["urlSigner"] = fmt.Errorf("failed to create url signer: %w", err)
			return
		}
		c.urlSigner = signer
	})
	if err, exists := c.initErrors["urlSigner"]; exists {
		return nil, err
	}
	return c.urlSigner, nil
}

// HTTPServer returns the HTTP server with all routes configured.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if err, exists := c.initErrors["httpServer"]; exists {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics
// are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err, exists := c.initErrors["metricsServer"]; exists {
		return nil, err
	}
	return c.metricsServer, nil
}

// Sweeper returns the expired link sweeper.
func (c *Container) Sweeper() (*worker.Sweeper, error) {
	c.sweeperInit.Do(func() {
		useCase, err := c.AccessLinkUseCase()
		if err != nil {
			c.initErrors["sweeper"] = fmt.Errorf("failed to get access link use case for sweeper: %w", err)
			return
		}
		c.sweeper = worker.NewSweeper(
			worker.Config{Interval: c.config.SweeperInterval},
			useCase,
			c.Logger(),
		)
	})
	if err, exists := c.initErrors["sweeper"]; exists {
		return nil, err
	}
	return c.sweeper, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.urlSigner != nil {
		if err := c.urlSigner.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("url signer close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a structured logger from the configured log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initHTTPServer creates the HTTP server with handlers and middleware wired.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	accessLinkHandler, err := c.AccessLinkHandler()
	if err != nil {
		return nil, err
	}

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, err
	}

	secureViewHandler, err := c.SecureViewHandler(ctx)
	if err != nil {
		return nil, err
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, err
	}

	routerCfg := http.RouterConfig{
		AccessLinkHandler: accessLinkHandler,
		TokenHandler:      tokenHandler,
		SecureViewHandler: secureViewHandler,

		AuthMiddleware: authHTTP.AuthenticationMiddleware(
			tokenUseCase,
			c.AuthTokenService(),
			logger,
		),
		ReaderAuthMiddleware: secureview.ReaderAuthMiddleware(c.config.ReaderJWTSecret, logger),

		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
	}

	if c.config.RateLimitEnabled {
		routerCfg.RateLimitMiddleware = authHTTP.RateLimitMiddleware(
			c.config.RateLimitRequestsPerSec,
			c.config.RateLimitBurst,
			logger,
		)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider != nil {
		routerCfg.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(routerCfg)

	return server, nil
}
