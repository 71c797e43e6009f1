// Package usecase implements business logic orchestration for service-client authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
	authService "github.com/afrireads/bookgate/internal/auth/service"
)

// clientUseCase implements ClientUseCase.
type clientUseCase struct {
	clientRepo    ClientRepository
	secretService authService.SecretService
}

// Create registers a new service client. The generated plain secret is only
// returned here; the stored record keeps the Argon2id hash.
func (c *clientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Secret:    hashedSecret,
		Name:      input.Name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ClientID:    client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Get retrieves a client by ID.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(
	clientRepo ClientRepository,
	secretService authService.SecretService,
) ClientUseCase {
	return &clientUseCase{
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}
