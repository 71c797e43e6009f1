package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	linkUseCase "github.com/afrireads/bookgate/internal/accesslink/usecase"
)

// RunRevokeAccessLink revokes an access link by its plain token. Revocation
// is permanent; the link stays on record with its revocation timestamp.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeAccessLink(
	ctx context.Context,
	accessLinkUseCase linkUseCase.AccessLinkUseCase,
	logger *slog.Logger,
	writer io.Writer,
	plainToken string,
) error {
	if plainToken == "" {
		return fmt.Errorf("token cannot be empty")
	}

	logger.Info("revoking access link")

	if err := accessLinkUseCase.Revoke(ctx, plainToken); err != nil {
		return fmt.Errorf("failed to revoke access link: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Access link revoked.")

	logger.Info("access link revoked successfully")
	return nil
}
