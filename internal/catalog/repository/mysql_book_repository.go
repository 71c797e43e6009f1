package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
	"github.com/afrireads/bookgate/internal/database"
	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// MySQLBookRepository implements read-only Book lookups for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLBookRepository struct {
	db *sql.DB
}

// Get retrieves a Book by ID, resolving the author name from the users table.
// Returns ErrBookNotFound if the book doesn't exist.
func (m *MySQLBookRepository) Get(ctx context.Context, bookID uuid.UUID) (*catalogDomain.Book, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT b.id, b.title, b.file_type, b.file_key, b.author_id, b.created_at, u.name
			  FROM books b
			  JOIN users u ON u.id = b.author_id
			  WHERE b.id = ?`

	id, err := bookID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal book id")
	}

	var book catalogDomain.Book
	var rawID, rawAuthorID []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
		&book.Title,
		&book.FileType,
		&book.FileKey,
		&rawAuthorID,
		&book.CreatedAt,
		&book.AuthorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book")
	}

	if book.ID, err = uuid.FromBytes(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse book id")
	}
	if book.AuthorID, err = uuid.FromBytes(rawAuthorID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse author id")
	}

	return &book, nil
}

// NewMySQLBookRepository creates a new MySQL Book repository.
func NewMySQLBookRepository(db *sql.DB) *MySQLBookRepository {
	return &MySQLBookRepository{db: db}
}
