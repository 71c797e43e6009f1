// Package commands implements the CLI actions as plain functions taking
// their dependencies, so they can be exercised without a container.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/afrireads/bookgate/internal/app"
)

// IOTuple pairs the streams a command reads from and writes to. Tests swap
// in buffers.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns the process stdin and stdout.
func DefaultIO() IOTuple {
	return IOTuple{Reader: os.Stdin, Writer: os.Stdout}
}

// closeContainer shuts the container down, logging rather than returning
// failures since callers are already on their way out.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate releases the migrate instance, logging source and database
// close failures separately.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := migrate.Close()
	if sourceErr != nil || databaseErr != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceErr),
			slog.Any("database_error", databaseErr),
		)
	}
}
