package app

import (
	"fmt"

	accesslinkHTTP "github.com/afrireads/bookgate/internal/accesslink/http"
	linkRepository "github.com/afrireads/bookgate/internal/accesslink/repository"
	linkService "github.com/afrireads/bookgate/internal/accesslink/service"
	linkUsecase "github.com/afrireads/bookgate/internal/accesslink/usecase"
	catalogRepository "github.com/afrireads/bookgate/internal/catalog/repository"
)

// AccessLinkRepository returns the access link repository instance.
func (c *Container) AccessLinkRepository() (linkUsecase.AccessLinkRepository, error) {
	c.accessLinkRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["accessLinkRepo"] = fmt.Errorf("failed to get database for access link repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.accessLinkRepo = linkRepository.NewMySQLAccessLinkRepository(db)
		case "postgres":
			c.accessLinkRepo = linkRepository.NewPostgreSQLAccessLinkRepository(db)
		default:
			c.initErrors["accessLinkRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["accessLinkRepo"]; exists {
		return nil, err
	}
	return c.accessLinkRepo, nil
}

// BookRepository returns the catalog book repository instance.
func (c *Container) BookRepository() (linkUsecase.BookRepository, error) {
	c.bookRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["bookRepo"] = fmt.Errorf("failed to get database for book repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.bookRepo = catalogRepository.NewMySQLBookRepository(db)
		case "postgres":
			c.bookRepo = catalogRepository.NewPostgreSQLBookRepository(db)
		default:
			c.initErrors["bookRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["bookRepo"]; exists {
		return nil, err
	}
	return c.bookRepo, nil
}

// UserRepository returns the catalog user repository instance.
func (c *Container) UserRepository() (linkUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = catalogRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = catalogRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["userRepo"]; exists {
		return nil, err
	}
	return c.userRepo, nil
}

// AccessLinkTokenService returns the access link token service instance.
func (c *Container) AccessLinkTokenService() linkService.TokenService {
	c.linkTokenServiceInit.Do(func() {
		c.accessLinkTokenService = linkService.NewTokenService()
	})
	return c.accessLinkTokenService
}

// AccessLinkUseCase returns the access link use case, wrapped with business
// metrics when metrics are enabled.
func (c *Container) AccessLinkUseCase() (linkUsecase.AccessLinkUseCase, error) {
	c.accessLinkUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["accessLinkUseCase"] = fmt.Errorf("failed to get tx manager for access link use case: %w", err)
			return
		}

		linkRepo, err := c.AccessLinkRepository()
		if err != nil {
			c.initErrors["accessLinkUseCase"] = err
			return
		}

		bookRepo, err := c.BookRepository()
		if err != nil {
			c.initErrors["accessLinkUseCase"] = err
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["accessLinkUseCase"] = err
			return
		}

		useCase := linkUsecase.NewAccessLinkUseCase(
			c.config,
			txManager,
			linkRepo,
			bookRepo,
			userRepo,
			c.AccessLinkTokenService(),
			c.Logger(),
		)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["accessLinkUseCase"] = err
			return
		}
		if businessMetrics != nil {
			useCase = linkUsecase.NewAccessLinkUseCaseWithMetrics(useCase, businessMetrics)
		}

		c.accessLinkUseCase = useCase
	})
	if err, exists := c.initErrors["accessLinkUseCase"]; exists {
		return nil, err
	}
	return c.accessLinkUseCase, nil
}

// AccessLinkHandler returns the access link HTTP handler instance.
func (c *Container) AccessLinkHandler() (*accesslinkHTTP.AccessLinkHandler, error) {
	c.accessLinkHandlerInit.Do(func() {
		useCase, err := c.AccessLinkUseCase()
		if err != nil {
			c.initErrors["accessLinkHandler"] = err
			return
		}
		c.accessLinkHandler = accesslinkHTTP.NewAccessLinkHandler(useCase, c.Logger())
	})
	if err, exists := c.initErrors["accessLinkHandler"]; exists {
		return nil, err
	}
	return c.accessLinkHandler, nil
}
