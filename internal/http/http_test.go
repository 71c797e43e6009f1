package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrireads/bookgate/internal/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger)
}

// healthRouter wires only the liveness endpoints plus the ambient
// middleware, skipping the handler dependencies the full router needs.
func healthRouter(server *Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(server.logger))

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler(t *testing.T) {
	w := doGet(t, healthRouter(newTestServer()), "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("nil database reports not ready", func(t *testing.T) {
		w := doGet(t, healthRouter(newTestServer()), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])

		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", components["database"])
	})
}

func TestRouterBasics(t *testing.T) {
	router := healthRouter(newTestServer())

	t.Run("unknown path is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, doGet(t, router, "/nonexistent").Code)
	})

	t.Run("panic recovers to 500", func(t *testing.T) {
		router.GET("/panic", func(c *gin.Context) {
			panic("boom")
		})
		assert.Equal(t, http.StatusInternalServerError, doGet(t, router, "/panic").Code)
	})

	t.Run("request id header set and parseable", func(t *testing.T) {
		w := doGet(t, router, "/health")

		requestID := w.Header().Get("X-Request-Id")
		require.NotEmpty(t, requestID)
		parsed, err := uuid.Parse(requestID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, parsed)
	})

	// Scraping goes through the dedicated metrics listener only.
	t.Run("no metrics endpoint on the API server", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, doGet(t, router, "/metrics").Code)
	})
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := newTestServer()
	server.router = healthRouter(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
	}
}

func TestMetricsServer_ServesPrometheusFormat(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
