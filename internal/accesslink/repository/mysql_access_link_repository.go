package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
	"github.com/afrireads/bookgate/internal/database"
	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQLAccessLinkRepository implements AccessLink persistence for MySQL.
// Uses BINARY(16) UUID storage with transaction support via database.GetTx().
type MySQLAccessLinkRepository struct {
	db *sql.DB
}

// Create inserts a new AccessLink. A duplicate key error on the token hash is
// reported as ErrDuplicateToken so the caller can regenerate and retry.
func (m *MySQLAccessLinkRepository) Create(ctx context.Context, link *linkDomain.AccessLink) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := link.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal access link ID")
	}
	userIDBytes, err := link.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user ID")
	}
	bookIDBytes, err := link.BookID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal book ID")
	}

	query := `INSERT INTO access_links (id, token_hash, user_id, book_id, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		link.TokenHash,
		userIDBytes,
		bookIDBytes,
		link.ExpiresAt,
		link.RevokedAt,
		link.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return linkDomain.ErrDuplicateToken
		}
		return apperrors.Wrap(err, "failed to create access link")
	}
	return nil
}

// GetByTokenHash retrieves an AccessLink by its token hash with the book,
// author and user data joined. Returns ErrLinkNotFound if no link matches.
func (m *MySQLAccessLinkRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*linkDomain.AccessLink, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + joinedLinkColumns + `
			  FROM access_links al
			  JOIN books b ON b.id = al.book_id
			  JOIN users au ON au.id = b.author_id
			  JOIN users u ON u.id = al.user_id
			  WHERE al.token_hash = ?`

	link, err := scanJoinedLinkMySQL(querier.QueryRowContext(ctx, query, tokenHash))
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
func (m *MySQLAccessLinkRepository) GetActiveByUserAndBook(
	ctx context.Context,
	userID, bookID uuid.UUID,
	now time.Time,
) (*linkDomain.AccessLink, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user ID")
	}
	bookIDBytes, err := bookID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal book ID")
	}

	query := `SELECT ` + joinedLinkColumns + `
			  FROM access_links al
			  JOIN books b ON b.id = al.book_id
			  JOIN users au ON au.id = b.author_id
			  JOIN users u ON u.id = al.user_id
			  WHERE al.user_id = ? AND al.book_id = ?
			    AND al.revoked_at IS NULL AND al.expires_at > ?
			  ORDER BY al.created_at DESC
			  LIMIT 1`

	link, err := scanJoinedLinkMySQL(querier.QueryRowContext(ctx, query, userIDBytes, bookIDBytes, now))
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
func (m *MySQLAccessLinkRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*linkDomain.AccessLink, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user ID")
	}

	query := `SELECT ` + joinedLinkColumns + `
			  FROM access_links al
			  JOIN books b ON b.id = al.book_id
			  JOIN users au ON au.id = b.author_id
			  JOIN users u ON u.id = al.user_id
			  WHERE al.user_id = ?
			  ORDER BY al.created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access links")
	}
	defer rows.Close()

	var links []*linkDomain.AccessLink
	for rows.Next() {
		link, err := scanJoinedLinkMySQL(rows)
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
// time is preserved. Returns the number of rows updated.
func (m *MySQLAccessLinkRepository) Revoke(
	ctx context.Context,
	tokenHash string,
	at time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE access_links SET revoked_at = ?
			  WHERE token_hash = ? AND revoked_at IS NULL`

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
// count of deleted rows.
func (m *MySQLAccessLinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM access_links WHERE expires_at < ?`

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
func (m *MySQLAccessLinkRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM access_links WHERE expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired access links")
	}
	return count, nil
}

// scanJoinedLinkMySQL decodes one joined access link row, converting BINARY(16)
// UUID columns back into uuid.UUID values.
func scanJoinedLinkMySQL(row rowScanner) (*linkDomain.AccessLink, error) {
	var link linkDomain.AccessLink
	var book catalogDomain.Book
	var user catalogDomain.User
	var idBytes, userIDBytes, bookIDBytes, authorIDBytes []byte

	err := row.Scan(
		&idBytes,
		&link.TokenHash,
		&userIDBytes,
		&bookIDBytes,
		&link.ExpiresAt,
		&link.RevokedAt,
		&link.CreatedAt,
		&book.Title,
		&book.FileType,
		&book.FileKey,
		&authorIDBytes,
		&book.AuthorName,
		&user.Name,
		&user.Email,
	)
	if err != nil {
		return nil, err
	}

	if link.ID, err = uuid.FromBytes(idBytes); err != nil {
		return nil, err
	}
	if link.UserID, err = uuid.FromBytes(userIDBytes); err != nil {
		return nil, err
	}
	if link.BookID, err = uuid.FromBytes(bookIDBytes); err != nil {
		return nil, err
	}
	if book.AuthorID, err = uuid.FromBytes(authorIDBytes); err != nil {
		return nil, err
	}

	book.ID = link.BookID
	user.ID = link.UserID
	link.Book = &book
	link.User = &user

	return &link, nil
}

// NewMySQLAccessLinkRepository creates a new MySQL AccessLink repository.
func NewMySQLAccessLinkRepository(db *sql.DB) *MySQLAccessLinkRepository {
	return &MySQLAccessLinkRepository{db: db}
}
