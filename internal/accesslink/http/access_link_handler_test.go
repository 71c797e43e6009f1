package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	"github.com/afrireads/bookgate/internal/accesslink/http/dto"
	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
)

// mockAccessLinkUseCase is a mock implementation of usecase.AccessLinkUseCase for testing.
type mockAccessLinkUseCase struct {
	mock.Mock
}

func (m *mockAccessLinkUseCase) Create(
	ctx context.Context,
	input *linkDomain.CreateAccessLinkInput,
) (*linkDomain.CreateAccessLinkOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkDomain.CreateAccessLinkOutput), args.Error(1)
}

func (m *mockAccessLinkUseCase) Validate(
	ctx context.Context,
	plainToken string,
) (*linkDomain.ValidationResult, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkDomain.ValidationResult), args.Error(1)
}

func (m *mockAccessLinkUseCase) Revoke(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

func (m *mockAccessLinkUseCase) GetActiveForReader(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*linkDomain.AccessLink, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkDomain.AccessLink), args.Error(1)
}

func (m *mockAccessLinkUseCase) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*linkDomain.AccessLink, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*linkDomain.AccessLink), args.Error(1)
}

func (m *mockAccessLinkUseCase) CleanupExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccessLinkUseCase) CountExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupRouter(handler *AccessLinkHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/access-links", handler.CreateHandler)
	router.GET("/v1/access-links/:token", handler.ValidateHandler)
	router.DELETE("/v1/access-links/:token", handler.RevokeHandler)
	router.GET("/v1/users/:user_id/access-links", handler.ListByUserHandler)
	return router
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newIssuedLink(userID, bookID uuid.UUID) *linkDomain.AccessLink {
	now := time.Now().UTC()
	return &linkDomain.AccessLink{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: "stored-hash",
		UserID:    userID,
		BookID:    bookID,
		ExpiresAt: now.Add(168 * time.Hour),
		CreatedAt: now,
		Book: &catalogDomain.Book{
			ID:         bookID,
			Title:      "A Grain of Wheat",
			FileType:   "pdf",
			AuthorName: "Ngugi wa Thiong'o",
		},
	}
}

func TestAccessLinkHandler_CreateHandler(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	bookID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		output := &linkDomain.CreateAccessLinkOutput{
			AccessLink: newIssuedLink(userID, bookID),
			PlainToken: "plain-token-abc",
			ShareURL:   "https://reads.example.com/access-links/plain-token-abc/view",
		}
		useCase.On("Create", mock.Anything, mock.MatchedBy(func(in *linkDomain.CreateAccessLinkInput) bool {
			return in.UserID == userID && in.BookID == bookID && in.ExpiresInHours == 24
		})).Return(output, nil)

		body, _ := json.Marshal(map[string]any{
			"user_id":          userID.String(),
			"book_id":          bookID.String(),
			"expires_in_hours": 24,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/access-links", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.CreateAccessLinkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "plain-token-abc", resp.AccessToken)
		assert.Equal(t, "https://reads.example.com/access-links/plain-token-abc/view", resp.ShareURL)
		assert.Equal(t, userID.String(), resp.UserID)
		require.NotNil(t, resp.Book)
		assert.Equal(t, "A Grain of Wheat", resp.Book.Title)
		require.NotNil(t, resp.RemainingTime)
		assert.False(t, resp.RemainingTime.Expired)
		useCase.AssertExpectations(t)
	})

	t.Run("ValidationError_MissingBookID", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		body, _ := json.Marshal(map[string]any{"user_id": userID.String()})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/access-links", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Create")
	})

	t.Run("ValidationError_NegativeHours", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		body, _ := json.Marshal(map[string]any{
			"user_id":          userID.String(),
			"book_id":          bookID.String(),
			"expires_in_hours": -1,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/access-links", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Create")
	})

	t.Run("NotFound_UnknownBook", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		useCase.On("Create", mock.Anything, mock.Anything).Return(nil, catalogDomain.ErrBookNotFound)

		body, _ := json.Marshal(map[string]any{
			"user_id": userID.String(),
			"book_id": bookID.String(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/access-links", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccessLinkHandler_ValidateHandler(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		link := newIssuedLink(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		useCase.On("Validate", mock.Anything, "live-token").Return(linkDomain.Valid(link), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/access-links/live-token", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ValidateAccessLinkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Empty(t, resp.Reason)
		require.NotNil(t, resp.AccessLink)
		assert.Equal(t, link.ID.String(), resp.AccessLink.ID)
	})

	t.Run("InvalidToken_ReasonInBody", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		useCase.On("Validate", mock.Anything, "revoked-token").
			Return(linkDomain.Invalid(linkDomain.ReasonRevoked), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/access-links/revoked-token", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ValidateAccessLinkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
		assert.Equal(t, "Token has been revoked", resp.Reason)
		assert.Nil(t, resp.AccessLink)
	})

	t.Run("InfrastructureError", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		useCase.On("Validate", mock.Anything, "any-token").Return(nil, errors.New("connection reset"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/access-links/any-token", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAccessLinkHandler_RevokeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		useCase.On("Revoke", mock.Anything, "live-token").Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/access-links/live-token", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("UnknownTokenStillNoContent", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		useCase.On("Revoke", mock.Anything, "unknown-token").Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/access-links/unknown-token", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAccessLinkHandler_ListByUserHandler(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		links := []*linkDomain.AccessLink{
			newIssuedLink(userID, uuid.Must(uuid.NewV7())),
			newIssuedLink(userID, uuid.Must(uuid.NewV7())),
		}
		useCase.On("ListForUser", mock.Anything, userID, 0, 50).Return(links, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/access-links", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ListAccessLinksResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})

	t.Run("BadRequest_InvalidUserID", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/users/not-a-uuid/access-links", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "ListForUser")
	})

	t.Run("BadRequest_InvalidLimit", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		handler := NewAccessLinkHandler(useCase, testLogger())
		router := setupRouter(handler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodGet,
			"/v1/users/"+userID.String()+"/access-links?limit=500",
			nil,
		)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
