package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
)

func TestMySQLBookRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns book with binary uuids decoded", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		bookID := uuid.Must(uuid.NewV7())
		authorID := uuid.Must(uuid.NewV7())
		rawBookID, _ := bookID.MarshalBinary()
		rawAuthorID, _ := authorID.MarshalBinary()
		createdAt := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "title", "file_type", "file_key", "author_id", "created_at", "name"}).
			AddRow(rawBookID, "Dust", "epub", "books/dust.epub", rawAuthorID, createdAt, "Yvonne Owuor")

		mock.ExpectQuery("SELECT b.id, b.title").
			WithArgs(rawBookID).
			WillReturnRows(rows)

		repo := NewMySQLBookRepository(db)
		book, err := repo.Get(ctx, bookID)

		require.NoError(t, err)
		assert.Equal(t, bookID, book.ID)
		assert.Equal(t, authorID, book.AuthorID)
		assert.Equal(t, "Dust", book.Title)
		assert.Equal(t, "Yvonne Owuor", book.AuthorName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrBookNotFound for missing book", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		bookID := uuid.Must(uuid.NewV7())
		rawBookID, _ := bookID.MarshalBinary()

		mock.ExpectQuery("SELECT b.id, b.title").
			WithArgs(rawBookID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "file_type", "file_key", "author_id", "created_at", "name"}))

		repo := NewMySQLBookRepository(db)
		book, err := repo.Get(ctx, bookID)

		assert.Nil(t, book)
		assert.ErrorIs(t, err, catalogDomain.ErrBookNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
