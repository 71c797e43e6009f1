package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	linkService "github.com/afrireads/bookgate/internal/accesslink/service"
	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
	"github.com/afrireads/bookgate/internal/config"
	"github.com/afrireads/bookgate/internal/database"
)

// BookRepository defines the catalog lookups the access link flow depends on.
type BookRepository interface {
	// Get retrieves a book by ID. Returns ErrBookNotFound if not found.
	Get(ctx context.Context, bookID uuid.UUID) (*catalogDomain.Book, error)
}

// UserRepository defines the reader lookups the access link flow depends on.
type UserRepository interface {
	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*catalogDomain.User, error)
}

// accessLinkUseCase implements AccessLinkUseCase.
type accessLinkUseCase struct {
	config       *config.Config
	txManager    database.TxManager
	linkRepo     AccessLinkRepository
	bookRepo     BookRepository
	userRepo     UserRepository
	tokenService linkService.TokenService
	logger       *slog.Logger
}

// Create issues a new access link.
//
// The referenced book and user must exist; missing references surface as
// ErrBookNotFound or ErrUserNotFound. The token is generated fresh, stored as
// a SHA-256 hash, and returned in plain form exactly once together with the
// share URL. A hash collision on insert is retried once with a new token
// before giving up.
func (a *accessLinkUseCase) Create(
	ctx context.Context,
	input *linkDomain.CreateAccessLinkInput,
) (*linkDomain.CreateAccessLinkOutput, error) {
	ttl := a.config.AccessLinkTTL()
	if input.ExpiresInHours != 0 {
		ttl = time.Duration(input.ExpiresInHours * float64(time.Hour))
	}

	// A unique violation aborts the surrounding transaction, so the collision
	// retry re-runs the whole transaction with a fresh token.
	var output *linkDomain.CreateAccessLinkOutput
	for attempt := 0; attempt < 2; attempt++ {
		plainToken, tokenHash, err := a.tokenService.GenerateToken()
		if err != nil {
			return nil, err
		}

		// The existence checks and the insert share one transaction so a book
		// or user deleted mid-flight cannot leave an orphaned link behind.
		err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
			book, err := a.bookRepo.Get(ctx, input.BookID)
			if err != nil {
				return err
			}
			user, err := a.userRepo.Get(ctx, input.UserID)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			link := &linkDomain.AccessLink{
				ID:        uuid.Must(uuid.NewV7()),
				TokenHash: tokenHash,
				UserID:    input.UserID,
				BookID:    input.BookID,
				ExpiresAt: now.Add(ttl),
				RevokedAt: nil,
				CreatedAt: now,
			}

			if err := a.linkRepo.Create(ctx, link); err != nil {
				return err
			}

			link.Book = book
			link.User = user

			output = &linkDomain.CreateAccessLinkOutput{
				AccessLink: link,
				PlainToken: plainToken,
				ShareURL:   a.shareURL(plainToken),
			}
			return nil
		})
		if err == nil {
			return output, nil
		}
		if errors.Is(err, linkDomain.ErrDuplicateToken) && attempt == 0 {
			a.logger.Warn("access link token collision, regenerating", "book_id", input.BookID)
			continue
		}
		return nil, err
	}

	return output, nil
}

// Validate evaluates a plain token against the stored grants.
//
// The verdict distinguishes unknown, revoked and expired tokens for operator
// visibility, with revocation checked before expiry. Infrastructure failures
// are returned as errors, never folded into an invalid verdict.
func (a *accessLinkUseCase) Validate(
	ctx context.Context,
	plainToken string,
) (*linkDomain.ValidationResult, error) {
	tokenHash := a.tokenService.HashToken(plainToken)

	link, err := a.linkRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, linkDomain.ErrLinkNotFound) {
			return linkDomain.Invalid(linkDomain.ReasonNotFound), nil
		}
		return nil, err
	}

	return link.Evaluate(time.Now().UTC()), nil
}

// Revoke invalidates the link matching the plain token. Unknown and
// already-revoked tokens are ignored so repeated revocations converge.
func (a *accessLinkUseCase) Revoke(ctx context.Context, plainToken string) error {
	tokenHash := a.tokenService.HashToken(plainToken)

	affected, err := a.linkRepo.Revoke(ctx, tokenHash, time.Now().UTC())
	if err != nil {
		return err
	}
	if affected == 0 {
		a.logger.Debug("revoke matched no live access link")
	}
	return nil
}

// GetActiveForReader returns the caller's live grant for a book.
func (a *accessLinkUseCase) GetActiveForReader(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*linkDomain.AccessLink, error) {
	return a.linkRepo.GetActiveByUserAndBook(ctx, userID, bookID, time.Now().UTC())
}

// ListForUser returns a page of the user's links, newest first.
func (a *accessLinkUseCase) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*linkDomain.AccessLink, error) {
	return a.linkRepo.ListByUser(ctx, userID, offset, limit)
}

// CountExpired reports how many links CleanupExpired would remove.
func (a *accessLinkUseCase) CountExpired(ctx context.Context) (int64, error) {
	return a.linkRepo.CountExpired(ctx, time.Now().UTC())
}

// CleanupExpired deletes all links past their deadline.
func (a *accessLinkUseCase) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := a.linkRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		a.logger.Info("removed expired access links", "count", deleted)
	}
	return deleted, nil
}

func (a *accessLinkUseCase) shareURL(plainToken string) string {
	base := strings.TrimRight(a.config.ShareLinkBaseURL, "/")
	return base + "/access-links/" + plainToken + "/view"
}

// NewAccessLinkUseCase creates a new AccessLinkUseCase.
func NewAccessLinkUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	linkRepo AccessLinkRepository,
	bookRepo BookRepository,
	userRepo UserRepository,
	tokenService linkService.TokenService,
	logger *slog.Logger,
) AccessLinkUseCase {
	return &accessLinkUseCase{
		config:       cfg,
		txManager:    txManager,
		linkRepo:     linkRepo,
		bookRepo:     bookRepo,
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}
