package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/afrireads/bookgate/internal/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"internal", apperrors.New("database dropped"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			HandleErrorGin(c, tt.err, discardLogger())

			assert.Equal(t, tt.wantStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantError, response.Error)
		})
	}

	t.Run("wrapped errors map through the chain", func(t *testing.T) {
		c, w := newTestContext(t)

		HandleErrorGin(c, apperrors.Wrap(apperrors.ErrNotFound, "access link"), discardLogger())

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(t)

		HandleErrorGin(c, nil, discardLogger())

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleAccessDeniedGin(t *testing.T) {
	c, w := newTestContext(t)

	HandleAccessDeniedGin(c, "Token has expired", discardLogger())

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "access_denied", response.Error)
	// The denial reason must never leak to the client
	assert.Equal(t, "Access Denied", response.Message)
}

func TestMakeJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	MakeJSONResponse(w, http.StatusCreated, map[string]string{"status": "created"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"created"}`, w.Body.String())
}
