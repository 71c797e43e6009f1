package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	linkUseCase "github.com/afrireads/bookgate/internal/accesslink/usecase"
)

// RunCreateAccessLink issues a new access link for a reader and a book.
// The plain token and share URL are shown exactly once; only the token hash
// is stored.
//
// Requirements: Database must be migrated and accessible, and both the user
// and the book must already exist.
func RunCreateAccessLink(
	ctx context.Context,
	accessLinkUseCase linkUseCase.AccessLinkUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userIDRaw string,
	bookIDRaw string,
	ttlHours float64,
	format string,
) error {
	userID, err := uuid.Parse(userIDRaw)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	bookID, err := uuid.Parse(bookIDRaw)
	if err != nil {
		return fmt.Errorf("invalid book ID: %w", err)
	}

	logger.Info("creating access link",
		slog.String("user_id", userID.String()),
		slog.String("book_id", bookID.String()),
	)

	input := &linkDomain.CreateAccessLinkInput{
		UserID:         userID,
		BookID:         bookID,
		ExpiresInHours: ttlHours,
	}

	output, err := accessLinkUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create access link: %w", err)
	}

	if format == "json" {
		outputLinkJSON(output, writer)
	} else {
		outputLinkText(output, writer)
	}

	logger.Info("access link created successfully",
		slog.String("link_id", output.AccessLink.ID.String()),
		slog.Time("expires_at", output.AccessLink.ExpiresAt),
	)

	return nil
}

// outputLinkText outputs the result in human-readable text format.
func outputLinkText(output *linkDomain.CreateAccessLinkOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nAccess link created successfully!")
	_, _ = fmt.Fprintf(writer, "Link ID: %s\n", output.AccessLink.ID.String())
	_, _ = fmt.Fprintf(writer, "Token: %s\n", output.PlainToken)
	_, _ = fmt.Fprintf(writer, "Share URL: %s\n", output.ShareURL)
	_, _ = fmt.Fprintf(writer, "Expires at: %s\n", output.AccessLink.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The token is shown only once. Store it securely.")
}

// outputLinkJSON outputs the result in JSON format for machine consumption.
func outputLinkJSON(output *linkDomain.CreateAccessLinkOutput, writer io.Writer) {
	result := map[string]string{
		"link_id":    output.AccessLink.ID.String(),
		"token":      output.PlainToken,
		"share_url":  output.ShareURL,
		"expires_at": output.AccessLink.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
