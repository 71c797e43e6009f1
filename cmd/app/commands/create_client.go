package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
	authUseCase "github.com/afrireads/bookgate/internal/auth/usecase"
)

// RunCreateClient registers a new service client and prints its credentials.
// The plain secret is shown exactly once; only its hash is stored.
//
// Requirements: Database must be migrated and accessible.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	if name == "" {
		return fmt.Errorf("client name cannot be empty")
	}

	logger.Info("creating new client", slog.String("name", name))

	output, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{Name: name})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == "json" {
		outputClientJSON(output, writer)
	} else {
		outputClientText(output, writer)
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ClientID.String()),
		slog.String("name", name),
	)

	return nil
}

// outputClientText outputs the result in human-readable text format.
func outputClientText(output *authDomain.CreateClientOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nClient created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ClientID.String())
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputClientJSON outputs the result in JSON format for machine consumption.
func outputClientJSON(output *authDomain.CreateClientOutput, writer io.Writer) {
	result := map[string]string{
		"client_id": output.ClientID.String(),
		"secret":    output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
