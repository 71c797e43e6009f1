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

// MySQLUserRepository implements read-only User lookups for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// Get retrieves a User by ID. Returns ErrUserNotFound if the user doesn't exist.
func (m *MySQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*catalogDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, email, created_at FROM users WHERE id = ?`

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	var user catalogDomain.User
	var rawID []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if user.ID, err = uuid.FromBytes(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}

	return &user, nil
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
