package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
	authUseCase "github.com/afrireads/bookgate/internal/auth/usecase"
	"github.com/afrireads/bookgate/internal/httputil"
	customValidation "github.com/afrireads/bookgate/internal/validation"
)

// TokenHandler handles HTTP requests for service token issuance.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueTokenRequest contains the credentials presented for token issuance.
type IssueTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			is.UUID,
		),
		validation.Field(&r.ClientSecret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// IssueTokenResponse contains the issued bearer token.
// SECURITY: The token is only returned once and must be saved by the caller.
type IssueTokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IssueHandler exchanges client credentials for a short-lived bearer token.
// POST /v1/token
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	var req IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &authDomain.IssueTokenInput{
		ClientID:     uuid.MustParse(req.ClientID),
		ClientSecret: req.ClientSecret,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, IssueTokenResponse{
		AccessToken: output.PlainToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
	})
}
