package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/afrireads/bookgate/internal/accesslink/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockAccessLinkUseCase struct {
	mock.Mock
}

func (m *mockAccessLinkUseCase) Create(
	ctx context.Context,
	input *domain.CreateAccessLinkInput,
) (*domain.CreateAccessLinkOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateAccessLinkOutput), args.Error(1)
}

func (m *mockAccessLinkUseCase) Validate(
	ctx context.Context,
	plainToken string,
) (*domain.ValidationResult, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}

func (m *mockAccessLinkUseCase) Revoke(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

func (m *mockAccessLinkUseCase) GetActiveForReader(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*domain.AccessLink, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessLink), args.Error(1)
}

func (m *mockAccessLinkUseCase) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.AccessLink, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccessLink), args.Error(1)
}

func (m *mockAccessLinkUseCase) CleanupExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccessLinkUseCase) CountExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSweeper_Sweep(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		useCase.On("CleanupExpired", mock.Anything).Return(int64(3), nil)

		sweeper := NewSweeper(Config{Interval: time.Minute}, useCase, testLogger())
		err := sweeper.Sweep(context.Background())

		assert.NoError(t, err)
		useCase.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		useCase := &mockAccessLinkUseCase{}
		useCase.On("CleanupExpired", mock.Anything).Return(int64(0), errors.New("database error"))

		sweeper := NewSweeper(Config{Interval: time.Minute}, useCase, testLogger())
		err := sweeper.Sweep(context.Background())

		assert.Error(t, err)
	})
}

func TestSweeper_Start(t *testing.T) {
	t.Run("SweepsOnIntervalUntilCancelled", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		swept := make(chan struct{}, 10)
		useCase := &mockAccessLinkUseCase{}
		useCase.On("CleanupExpired", mock.Anything).Run(func(args mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		}).Return(int64(1), nil)

		ctx, cancel := context.WithCancel(context.Background())
		sweeper := NewSweeper(Config{Interval: time.Millisecond}, useCase, testLogger())

		done := make(chan error, 1)
		go func() {
			done <- sweeper.Start(ctx)
		}()

		select {
		case <-swept:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not run within deadline")
		}

		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop within deadline")
		}
	})

	t.Run("KeepsRunningAfterSweepFailure", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		var calls int
		swept := make(chan int, 10)
		useCase := &mockAccessLinkUseCase{}
		useCase.On("CleanupExpired", mock.Anything).Run(func(args mock.Arguments) {
			calls++
			select {
			case swept <- calls:
			default:
			}
		}).Return(int64(0), errors.New("database error"))

		ctx, cancel := context.WithCancel(context.Background())
		sweeper := NewSweeper(Config{Interval: time.Millisecond}, useCase, testLogger())

		done := make(chan error, 1)
		go func() {
			done <- sweeper.Start(ctx)
		}()

		deadline := time.After(time.Second)
		for {
			select {
			case n := <-swept:
				if n >= 2 {
					cancel()
					<-done
					return
				}
			case <-deadline:
				cancel()
				<-done
				t.Fatal("sweeper stopped after first failure")
			}
		}
	})
}
