// Package repository implements access link persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
	"github.com/afrireads/bookgate/internal/database"
	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// joinedLinkColumns is the column list shared by the joined access link reads.
const joinedLinkColumns = `al.id, al.token_hash, al.user_id, al.book_id, al.expires_at, al.revoked_at, al.created_at,
			  b.title, b.file_type, b.file_key, b.author_id, au.name,
			  u.name, u.email`

// PostgreSQLAccessLinkRepository implements AccessLink persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAccessLinkRepository struct {
	db *sql.DB
}

// Create inserts a new AccessLink. A unique constraint violation on the token
// hash is reported as ErrDuplicateToken so the caller can regenerate and retry.
func (p *PostgreSQLAccessLinkRepository) Create(ctx context.Context, link *linkDomain.AccessLink) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO access_links (id, token_hash, user_id, book_id, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		link.ID,
		link.TokenHash,
		link.UserID,
		link.BookID,
		link.ExpiresAt,
		link.RevokedAt,
		link.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return linkDomain.ErrDuplicateToken
		}
		return apperrors.Wrap(err, "failed to create access link")
	}
	return nil
}

// GetByTokenHash retrieves an AccessLink by its token hash with the book,
// author and user data joined. Returns ErrLinkNotFound if no link matches.
func (p *PostgreSQLAccessLinkRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*linkDomain.AccessLink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + joinedLinkColumns + `
			  FROM access_links al
			  JOIN books b ON b.id = al.book_id
			  JOIN users au ON au.id = b.author_id
			  JOIN users u ON u.id = al.user_id
			  WHERE al.token_hash = $1`

	link, err := scanJoinedLink(querier.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, linkDomain.ErrLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get access link")
	}

	return link, nil
}

// GetActiveByUserAndBook retrieves the most recent currently valid link for a
// (user, book) pair. Returns ErrLinkNotFound if no live grant exists.
func (p *PostgreSQLAccessLinkRepository) GetActiveByUserAndBook(
	ctx context.Context,
	userID, bookID uuid.UUID,
	now time.Time,
) (*linkDomain.AccessLink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + joinedLinkColumns + `
			  FROM access_links al
			  JOIN books b ON b.id = al.book_id
			  JOIN users au ON au.id = b.author_id
			  JOIN users u ON u.id = al.user_id
			  WHERE al.user_id = $1 AND al.book_id = $2
			    AND al.revoked_at IS NULL AND al.expires_at > $3
			  ORDER BY al.created_at DESC
			  LIMIT 1`

	link, err := scanJoinedLink(querier.QueryRowContext(ctx, query, userID, bookID, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, linkDomain.ErrLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get active access link")
	}

	return link, nil
}

// ListByUser retrieves a page of a user's access links ordered newest first,
// with book data joined for display.
func (p *PostgreSQLAccessLinkRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*linkDomain.AccessLink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + joinedLinkColumns + `
			  FROM access_links al
			  JOIN books b ON b.id = al.book_id
			  JOIN users au ON au.id = b.author_id
			  JOIN users u ON u.id = al.user_id
			  WHERE al.user_id = $1
			  ORDER BY al.created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access links")
	}
	defer rows.Close()

	var links []*linkDomain.AccessLink
	for rows.Next() {
		link, err := scanJoinedLink(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan access link")
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate access links")
	}

	return links, nil
}

// Revoke marks the link matching the token hash as revoked at the given
// instant. Already-revoked links are left untouched so the original revocation
// time is preserved. Returns the number of rows updated; zero means the token
// was not found or was already revoked, which callers treat as a no-op.
func (p *PostgreSQLAccessLinkRepository) Revoke(
	ctx context.Context,
	tokenHash string,
	at time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE access_links SET revoked_at = $1
			  WHERE token_hash = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, at, tokenHash)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke access link")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read revoke result")
	}
	return affected, nil
}

// DeleteExpired removes all links whose deadline has passed and returns the
// count of deleted rows. The criteria are idempotent; re-running after a
// partial failure converges on the same target set.
func (p *PostgreSQLAccessLinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM access_links WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired access links")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read delete result")
	}
	return affected, nil
}

// CountExpired returns how many links are past their deadline without touching them.
func (p *PostgreSQLAccessLinkRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM access_links WHERE expires_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired access links")
	}
	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared joined scan.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanJoinedLink decodes one joined access link row into the domain entity.
func scanJoinedLink(row rowScanner) (*linkDomain.AccessLink, error) {
	var link linkDomain.AccessLink
	var book catalogDomain.Book
	var user catalogDomain.User

	err := row.Scan(
		&link.ID,
		&link.TokenHash,
		&link.UserID,
		&link.BookID,
		&link.ExpiresAt,
		&link.RevokedAt,
		&link.CreatedAt,
		&book.Title,
		&book.FileType,
		&book.FileKey,
		&book.AuthorID,
		&book.AuthorName,
		&user.Name,
		&user.Email,
	)
	if err != nil {
		return nil, err
	}

	book.ID = link.BookID
	user.ID = link.UserID
	link.Book = &book
	link.User = &user

	return &link, nil
}

// NewPostgreSQLAccessLinkRepository creates a new PostgreSQL AccessLink repository.
func NewPostgreSQLAccessLinkRepository(db *sql.DB) *PostgreSQLAccessLinkRepository {
	return &PostgreSQLAccessLinkRepository{db: db}
}
