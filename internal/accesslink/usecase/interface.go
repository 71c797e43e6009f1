// Package usecase defines business logic interfaces for access link operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
)

// AccessLinkRepository defines persistence operations for access links.
// Implementations must support transaction-aware operations via context propagation.
type AccessLinkRepository interface {
	// Create stores a new access link. Returns ErrDuplicateToken when the
	// token hash collides with an existing link.
	Create(ctx context.Context, link *linkDomain.AccessLink) error

	// GetByTokenHash retrieves a link by its token hash with book and user
	// data joined. Returns ErrLinkNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*linkDomain.AccessLink, error)

	// GetActiveByUserAndBook retrieves the newest link for the pair that is
	// neither revoked nor expired at the given instant. Returns
	// ErrLinkNotFound if no live grant exists.
	GetActiveByUserAndBook(
		ctx context.Context,
		userID, bookID uuid.UUID,
		now time.Time,
	) (*linkDomain.AccessLink, error)

	// ListByUser retrieves a page of a user's links ordered newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*linkDomain.AccessLink, error)

	// Revoke sets revoked_at on the link matching the hash if it is not
	// already revoked, returning the number of rows updated.
	Revoke(ctx context.Context, tokenHash string, at time.Time) (int64, error)

	// DeleteExpired removes all links past their deadline and returns the
	// count of deleted rows.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// CountExpired returns how many links are past their deadline without
	// touching them.
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// AccessLinkUseCase defines business logic operations for the access link
// lifecycle: issuing, validating, revoking and cleaning up grants.
type AccessLinkUseCase interface {
	// Create issues a new access link for a (user, book) pair. The book and
	// user must exist. A zero ExpiresInHours falls back to the configured
	// default lifetime. The returned output carries the plain token and the
	// share URL; the plain token is never recoverable afterwards.
	Create(
		ctx context.Context,
		input *linkDomain.CreateAccessLinkInput,
	) (*linkDomain.CreateAccessLinkOutput, error)

	// Validate evaluates a plain token and returns the verdict. An unknown,
	// revoked or expired token yields an invalid result with the reason set;
	// the error return is reserved for infrastructure failures. The verdict
	// reason is for operators and logs, never for end users.
	Validate(ctx context.Context, plainToken string) (*linkDomain.ValidationResult, error)

	// Revoke invalidates the link matching the plain token. Revoking an
	// unknown or already-revoked token is a silent no-op so the operation is
	// idempotent.
	Revoke(ctx context.Context, plainToken string) error

	// GetActiveForReader returns the caller's live grant for a book, or
	// ErrLinkNotFound when none exists.
	GetActiveForReader(ctx context.Context, userID, bookID uuid.UUID) (*linkDomain.AccessLink, error)

	// ListForUser returns a page of the user's links, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*linkDomain.AccessLink, error)

	// CleanupExpired deletes all expired links and returns how many were
	// removed. Safe to run repeatedly.
	CleanupExpired(ctx context.Context) (int64, error)

	// CountExpired reports how many links CleanupExpired would remove.
	CountExpired(ctx context.Context) (int64, error)
}
