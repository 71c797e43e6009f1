package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	linkUseCase "github.com/afrireads/bookgate/internal/accesslink/usecase"
)

// RunCleanExpiredLinks deletes access links whose deadline has passed.
// Supports dry-run mode to preview the deletion count and both text/JSON
// output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredLinks(
	ctx context.Context,
	accessLinkUseCase linkUseCase.AccessLinkUseCase,
	logger *slog.Logger,
	writer io.Writer,
	dryRun bool,
	format string,
) error {
	logger.Info("cleaning expired access links", slog.Bool("dry_run", dryRun))

	var count int64
	var err error
	if dryRun {
		count, err = accessLinkUseCase.CountExpired(ctx)
	} else {
		count, err = accessLinkUseCase.CleanupExpired(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to clean expired access links: %w", err)
	}

	if format == "json" {
		outputCleanJSON(count, dryRun, writer)
	} else {
		outputCleanText(count, dryRun, writer)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(count int64, dryRun bool, writer io.Writer) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired access link(s)\n", count)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired access link(s)\n", count)
	}
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(count int64, dryRun bool, writer io.Writer) {
	result := map[string]interface{}{
		"count":   count,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
