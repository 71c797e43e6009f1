package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("bookgate")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "bookgate"))
	router.GET("/v1/access-links/:token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"valid": true})
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/access-links/abc123", nil)
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// The route pattern, not the raw token, must appear as the path label
	mw := httptest.NewRecorder()
	mr := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(mw, mr)

	assert.Contains(t, mw.Body.String(), "/v1/access-links/:token")
	assert.NotContains(t, mw.Body.String(), "abc123")
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "unknown", sanitizePath(""))
	assert.Equal(t, "/v1/token", sanitizePath("/v1/token"))
}
