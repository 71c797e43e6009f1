package domain

import (
	"github.com/afrireads/bookgate/internal/errors"
)

// Access link persistence errors.
var (
	// ErrLinkNotFound indicates no access link matches the presented token.
	ErrLinkNotFound = errors.Wrap(errors.ErrNotFound, "access link not found")

	// ErrDuplicateToken indicates a token hash collision on insert. With 256
	// bits of token entropy this is effectively unreachable; callers regenerate
	// the token and retry the insert once.
	ErrDuplicateToken = errors.Wrap(errors.ErrConflict, "duplicate access token")
)
