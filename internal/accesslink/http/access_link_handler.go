// Package http provides HTTP handlers for access link lifecycle operations.
// These endpoints serve the storefront worker and operators, guarded by
// service-client bearer authentication.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	"github.com/afrireads/bookgate/internal/accesslink/http/dto"
	linkUseCase "github.com/afrireads/bookgate/internal/accesslink/usecase"
	"github.com/afrireads/bookgate/internal/httputil"
	customValidation "github.com/afrireads/bookgate/internal/validation"
)

// AccessLinkHandler handles HTTP requests for access link management.
type AccessLinkHandler struct {
	accessLinkUseCase linkUseCase.AccessLinkUseCase
	logger            *slog.Logger
}

// NewAccessLinkHandler creates a new access link handler with required dependencies.
func NewAccessLinkHandler(
	accessLinkUseCase linkUseCase.AccessLinkUseCase,
	logger *slog.Logger,
) *AccessLinkHandler {
	return &AccessLinkHandler{
		accessLinkUseCase: accessLinkUseCase,
		logger:            logger,
	}
}

// CreateHandler issues a new access link for a (user, book) pair.
// POST /v1/access-links
// Returns 201 Created with the plain token and share URL; neither is
// recoverable afterwards.
func (h *AccessLinkHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAccessLinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Already shape-checked by Validate
	userID := uuid.MustParse(req.UserID)
	bookID := uuid.MustParse(req.BookID)

	output, err := h.accessLinkUseCase.Create(c.Request.Context(), &linkDomain.CreateAccessLinkInput{
		UserID:         userID,
		BookID:         bookID,
		ExpiresInHours: req.ExpiresInHours,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreateOutputToResponse(output))
}

// ValidateHandler evaluates a bearer token and returns the verdict.
// GET /v1/access-links/:token
// Returns 200 OK for every evaluated token; invalid tokens carry the reason
// in the body rather than an error status, so operators can inspect dead
// links without tripping alerting.
func (h *AccessLinkHandler) ValidateHandler(c *gin.Context) {
	token := c.Param("token")

	result, err := h.accessLinkUseCase.Validate(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapValidationResultToResponse(result))
}

// RevokeHandler invalidates the link matching the bearer token.
// DELETE /v1/access-links/:token
// Returns 204 No Content whether or not a live link matched; revocation is
// idempotent and unknown tokens are not distinguishable to the caller.
func (h *AccessLinkHandler) RevokeHandler(c *gin.Context) {
	token := c.Param("token")

	if err := h.accessLinkUseCase.Revoke(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByUserHandler returns a page of a user's access links, newest first.
// GET /v1/users/:user_id/access-links?offset=0&limit=50
func (h *AccessLinkHandler) ListByUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid user_id parameter: %w", err), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	links, err := h.accessLinkUseCase.ListForUser(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessLinksToListResponse(links))
}
