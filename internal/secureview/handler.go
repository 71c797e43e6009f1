package secureview

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	linkUseCase "github.com/afrireads/bookgate/internal/accesslink/usecase"
	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
	apperrors "github.com/afrireads/bookgate/internal/errors"
	"github.com/afrireads/bookgate/internal/httputil"
)

// The response shapes below are the wire contract consumed by the protected
// viewer. Field names are camelCase and the author is nested under a user
// object, matching what the storefront renders.

// AuthorPayload carries the author's display identity.
type AuthorPayload struct {
	User UserPayload `json:"user"`
}

// UserPayload carries a display name.
type UserPayload struct {
	Name string `json:"name"`
}

// BookPayload is the viewer-facing book representation.
type BookPayload struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	FileType string        `json:"fileType"`
	Author   AuthorPayload `json:"author"`
}

// SecureViewData bundles the book with its short-lived document URL.
type SecureViewData struct {
	Book      BookPayload `json:"book"`
	SecureURL string      `json:"secureUrl"`
}

// SecureViewResponse is the envelope the viewer consumes.
type SecureViewResponse struct {
	Data SecureViewData `json:"data"`
}

// Handler serves the secure-view endpoints.
type Handler struct {
	accessLinkUseCase linkUseCase.AccessLinkUseCase
	signer            URLSigner
	logger            *slog.Logger
}

// NewHandler creates a new secure-view handler with required dependencies.
func NewHandler(
	accessLinkUseCase linkUseCase.AccessLinkUseCase,
	signer URLSigner,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accessLinkUseCase: accessLinkUseCase,
		signer:            signer,
		logger:            logger,
	}
}

// SecureViewHandler resolves the authenticated reader's live grant for a book
// and responds with the book plus a short-lived signed document URL.
// GET /v1/books/:id/secure-view - requires reader JWT authentication.
func (h *Handler) SecureViewHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleAccessDeniedGin(c, "malformed book id", h.logger)
		return
	}

	link, err := h.accessLinkUseCase.GetActiveForReader(c.Request.Context(), principal.UserID, bookID)
	if err != nil {
		if errors.Is(err, linkDomain.ErrLinkNotFound) {
			httputil.HandleAccessDeniedGin(c, "no active access link for reader and book", h.logger)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respondWithSignedView(c, link.Book)
}

// ShareViewHandler validates a presented share token and responds with the
// book plus a short-lived signed document URL.
// GET /v1/access-links/:token/view - the token itself is the credential.
func (h *Handler) ShareViewHandler(c *gin.Context) {
	token := c.Param("token")

	result, err := h.accessLinkUseCase.Validate(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if !result.IsValid {
		httputil.HandleAccessDeniedGin(c, result.Reason, h.logger)
		return
	}

	h.respondWithSignedView(c, result.AccessLink.Book)
}

func (h *Handler) respondWithSignedView(c *gin.Context, book *catalogDomain.Book) {
	if book == nil {
		h.logger.Error("secure view: access link carries no book data")
		httputil.HandleErrorGin(c, apperrors.New("missing book data"), h.logger)
		return
	}

	secureURL, err := h.signer.SignedURL(c.Request.Context(), book.FileKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, SecureViewResponse{
		Data: SecureViewData{
			Book: BookPayload{
				ID:       book.ID.String(),
				Title:    book.Title,
				FileType: book.FileType,
				Author: AuthorPayload{
					User: UserPayload{Name: book.AuthorName},
				},
			},
			SecureURL: secureURL,
		},
	})
}
