package app

import (
	"context"
	"fmt"

	authHTTP "github.com/afrireads/bookgate/internal/auth/http"
	authRepository "github.com/afrireads/bookgate/internal/auth/repository"
	authService "github.com/afrireads/bookgate/internal/auth/service"
	authUsecase "github.com/afrireads/bookgate/internal/auth/usecase"
	"github.com/afrireads/bookgate/internal/secureview"
)

// ClientRepository returns the service client repository instance.
func (c *Container) ClientRepository() (authUsecase.ClientRepository, error) {
	c.clientRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["clientRepo"] = fmt.Errorf("failed to get database for client repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.clientRepo = authRepository.NewMySQLClientRepository(db)
		case "postgres":
			c.clientRepo = authRepository.NewPostgreSQLClientRepository(db)
		default:
			c.initErrors["clientRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["clientRepo"]; exists {
		return nil, err
	}
	return c.clientRepo, nil
}

// TokenRepository returns the service token repository instance.
func (c *Container) TokenRepository() (authUsecase.TokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["tokenRepo"] = fmt.Errorf("failed to get database for token repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.tokenRepo = authRepository.NewMySQLTokenRepository(db)
		case "postgres":
			c.tokenRepo = authRepository.NewPostgreSQLTokenRepository(db)
		default:
			c.initErrors["tokenRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["tokenRepo"]; exists {
		return nil, err
	}
	return c.tokenRepo, nil
}

// SecretService returns the client secret hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// AuthTokenService returns the service token generation service.
func (c *Container) AuthTokenService() authService.TokenService {
	c.authTokenServiceInit.Do(func() {
		c.authTokenService = authService.NewTokenService()
	})
	return c.authTokenService
}

// ClientUseCase returns the service client use case instance.
func (c *Container) ClientUseCase() (authUsecase.ClientUseCase, error) {
	c.clientUseCaseInit.Do(func() {
		clientRepo, err := c.ClientRepository()
		if err != nil {
			c.initErrors["clientUseCase"] = err
			return
		}
		c.clientUseCase = authUsecase.NewClientUseCase(clientRepo, c.SecretService())
	})
	if err, exists := c.initErrors["clientUseCase"]; exists {
		return nil, err
	}
	return c.clientUseCase, nil
}

// TokenUseCase returns the service token use case instance.
func (c *Container) TokenUseCase() (authUsecase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		clientRepo, err := c.ClientRepository()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}

		tokenRepo, err := c.TokenRepository()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}

		c.tokenUseCase = authUsecase.NewTokenUseCase(
			c.config,
			clientRepo,
			tokenRepo,
			c.SecretService(),
			c.AuthTokenService(),
		)
	})
	if err, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, err
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the token issuing HTTP handler instance.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	c.tokenHandlerInit.Do(func() {
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			c.initErrors["tokenHandler"] = err
			return
		}
		c.tokenHandler = authHTTP.NewTokenHandler(tokenUseCase, c.Logger())
	})
	if err, exists := c.initErrors["tokenHandler"]; exists {
		return nil, err
	}
	return c.tokenHandler, nil
}

// SecureViewHandler returns the secure view HTTP handler instance.
func (c *Container) SecureViewHandler(ctx context.Context) (*secureview.Handler, error) {
	c.secureViewHandlerInit.Do(func() {
		useCase, err := c.AccessLinkUseCase()
		if err != nil {
			c.initErrors["secureViewHandler"] = err
			return
		}

		signer, err := c.URLSigner(ctx)
		if err != nil {
			c.initErrors["secureViewHandler"] = err
			return
		}

		c.secureViewHandler = secureview.NewHandler(useCase, signer, c.Logger())
	})
	if err, exists := c.initErrors["secureViewHandler"]; exists {
		return nil, err
	}
	return c.secureViewHandler, nil
}
