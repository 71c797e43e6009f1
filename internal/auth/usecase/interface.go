// Package usecase defines business logic interfaces for service-client authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
)

// ClientRepository defines persistence operations for service clients.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	// Create stores a new client in the repository.
	Create(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenRepository defines persistence operations for service tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash retrieves a token by its hash. Returns ErrTokenNotFound
	// if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
}

// ClientUseCase defines business logic operations for managing service clients.
type ClientUseCase interface {
	// Create registers a new service client with a generated Argon2id-hashed
	// secret. The plain secret is returned exactly once.
	Create(
		ctx context.Context,
		input *authDomain.CreateClientInput,
	) (*authDomain.CreateClientOutput, error)

	// Get retrieves a client by ID. The returned secret is the stored hash,
	// never plaintext.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenUseCase defines business logic operations for service token issuance
// and verification.
type TokenUseCase interface {
	// Issue authenticates a client by ID + secret and mints a short-lived
	// bearer token. Unknown clients and wrong secrets both surface as
	// ErrInvalidCredentials.
	Issue(
		ctx context.Context,
		input *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a presented token hash to its active client.
	// Unknown, expired and revoked tokens surface as ErrInvalidCredentials.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)
}
