package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
)

func tokenRouter(useCase *mockTokenUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewTokenHandler(useCase, testLogger())
	router.POST("/v1/token", handler.IssueHandler)
	return router
}

func TestTokenHandler_IssueHandler(t *testing.T) {
	clientID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		useCase := &mockTokenUseCase{}
		expiresAt := time.Now().UTC().Add(4 * time.Hour)

		useCase.On("Issue", mock.Anything, mock.MatchedBy(func(in *authDomain.IssueTokenInput) bool {
			return in.ClientID == clientID && in.ClientSecret == "plain-secret"
		})).Return(&authDomain.IssueTokenOutput{PlainToken: "plain-token", ExpiresAt: expiresAt}, nil)

		body, _ := json.Marshal(map[string]string{
			"client_id":     clientID.String(),
			"client_secret": "plain-secret",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		tokenRouter(useCase).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp IssueTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "plain-token", resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.WithinDuration(t, expiresAt, resp.ExpiresAt, time.Second)
	})

	t.Run("ValidationError_MissingSecret", func(t *testing.T) {
		useCase := &mockTokenUseCase{}

		body, _ := json.Marshal(map[string]string{"client_id": clientID.String()})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		tokenRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Issue")
	})

	t.Run("ValidationError_NonUUIDClientID", func(t *testing.T) {
		useCase := &mockTokenUseCase{}

		body, _ := json.Marshal(map[string]string{
			"client_id":     "not-a-uuid",
			"client_secret": "plain-secret",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		tokenRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Unauthorized_InvalidCredentials", func(t *testing.T) {
		useCase := &mockTokenUseCase{}
		useCase.On("Issue", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrInvalidCredentials)

		body, _ := json.Marshal(map[string]string{
			"client_id":     clientID.String(),
			"client_secret": "wrong-secret",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		tokenRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
