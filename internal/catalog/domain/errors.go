package domain

import (
	"github.com/afrireads/bookgate/internal/errors"
)

// Catalog lookup errors.
var (
	// ErrBookNotFound indicates a book with the specified ID was not found.
	ErrBookNotFound = errors.Wrap(errors.ErrNotFound, "book not found")

	// ErrUserNotFound indicates a user with the specified ID was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")
)
