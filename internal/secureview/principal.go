// Package secureview implements the viewer-facing endpoints that exchange a
// reader credential plus book reference for a short-lived signed document URL.
//
// Readers authenticate with JWTs issued by the external auth service; the
// share-link route accepts the access token itself as the credential. Every
// denial collapses to one generic response so callers cannot distinguish
// unknown, revoked and expired grants. The precise reason is only logged.
package secureview

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated reader identity extracted from a session JWT.
type Principal struct {
	UserID uuid.UUID
	Name   string
}

// principalKey is a context key type for storing reader principals.
type principalKey struct{}

// WithPrincipal stores a reader principal in the context.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves a reader principal from the context.
// Returns (principal, true) if present, or (nil, false) if no principal was set.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*Principal)
	return principal, ok
}
