// Package http provides HTTP middleware and handlers for service-client authentication.
package http

import (
	"context"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
)

// clientKey carries the authenticated client through the request context.
type clientKey struct{}

// WithClient records the client the bearer token resolved to. The
// authentication middleware calls this once per request.
func WithClient(ctx context.Context, client *authDomain.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// GetClient returns the authenticated client, or false when the request
// never passed the authentication middleware.
func GetClient(ctx context.Context) (*authDomain.Client, bool) {
	client, ok := ctx.Value(clientKey{}).(*authDomain.Client)
	return client, ok
}
