package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/afrireads/bookgate/internal/auth/domain"
)

func TestRunCreateClient(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	output := &authDomain.CreateClientOutput{
		ClientID:    uuid.Must(uuid.NewV7()),
		PlainSecret: "plain-client-secret",
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockClientUseCase{}
		mockUseCase.On("Create", ctx, mock.MatchedBy(func(input *authDomain.CreateClientInput) bool {
			return input.Name == "issuer-service"
		})).Return(output, nil)

		var out bytes.Buffer
		err := RunCreateClient(ctx, mockUseCase, logger, &out, "issuer-service", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Client created successfully!")
		require.Contains(t, out.String(), output.ClientID.String())
		require.Contains(t, out.String(), "plain-client-secret")
		require.Contains(t, out.String(), "shown only once")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockClientUseCase{}
		mockUseCase.On("Create", ctx, mock.AnythingOfType("*domain.CreateClientInput")).
			Return(output, nil)

		var out bytes.Buffer
		err := RunCreateClient(ctx, mockUseCase, logger, &out, "issuer-service", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"secret": "plain-client-secret"`)
		require.Contains(t, out.String(), `"client_id"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-name", func(t *testing.T) {
		mockUseCase := &mockClientUseCase{}

		err := RunCreateClient(ctx, mockUseCase, logger, &bytes.Buffer{}, "", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "client name cannot be empty")
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("use-case-failure", func(t *testing.T) {
		mockUseCase := &mockClientUseCase{}
		mockUseCase.On("Create", ctx, mock.AnythingOfType("*domain.CreateClientInput")).
			Return(nil, errors.New("connection refused"))

		err := RunCreateClient(ctx, mockUseCase, logger, &bytes.Buffer{}, "issuer-service", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create client")
	})
}
