// Package worker provides the background jobs that run alongside the HTTP
// server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/afrireads/bookgate/internal/accesslink/usecase"
)

// Config holds sweeper configuration
type Config struct {
	Interval time.Duration
}

// Sweeper periodically deletes expired access links.
type Sweeper struct {
	config            Config
	accessLinkUseCase usecase.AccessLinkUseCase
	logger            *slog.Logger
}

// NewSweeper creates a new Sweeper
func NewSweeper(config Config, accessLinkUseCase usecase.AccessLinkUseCase, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		config:            config,
		accessLinkUseCase: accessLinkUseCase,
		logger:            logger,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("starting expired link sweeper",
			slog.Duration("interval", s.config.Interval),
		)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Info("stopping expired link sweeper")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				if s.logger != nil {
					s.logger.Error("failed to sweep expired links", slog.Any("error", err))
				}
			}
		}
	}
}

// Sweep deletes all access links past their deadline.
func (s *Sweeper) Sweep(ctx context.Context) error {
	_, err := s.accessLinkUseCase.CleanupExpired(ctx)
	return err
}
