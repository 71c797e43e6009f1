// Package repository implements catalog persistence against PostgreSQL and MySQL.
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

// PostgreSQLBookRepository implements read-only Book lookups for PostgreSQL.
type PostgreSQLBookRepository struct {
	db *sql.DB
}

// Get retrieves a Book by ID, resolving the author name from the users table.
// Returns ErrBookNotFound if the book doesn't exist.
func (p *PostgreSQLBookRepository) Get(ctx context.Context, bookID uuid.UUID) (*catalogDomain.Book, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT b.id, b.title, b.file_type, b.file_key, b.author_id, b.created_at, u.name
			  FROM books b
			  JOIN users u ON u.id = b.author_id
			  WHERE b.id = $1`

	var book catalogDomain.Book

	err := querier.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.FileType,
		&book.FileKey,
		&book.AuthorID,
		&book.CreatedAt,
		&book.AuthorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book")
	}

	return &book, nil
}

// NewPostgreSQLBookRepository creates a new PostgreSQL Book repository.
func NewPostgreSQLBookRepository(db *sql.DB) *PostgreSQLBookRepository {
	return &PostgreSQLBookRepository{db: db}
}
