package viewer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// ErrAuthenticationRequired indicates a signed-in reader without a locally
// stored bearer credential. The session cannot recover without a fresh
// sign-in, so this is terminal.
var ErrAuthenticationRequired = apperrors.New("Authentication required")

// State is the reading session lifecycle state.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateFetching
	StateReady
	StateError
)

// String returns the state name for logging and display.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Identity is the reader resolved by the ambient auth provider.
type Identity struct {
	UserID uuid.UUID
	Name   string
}

// AuthProvider resolves the ambient authentication state. Resolve blocks
// until the state is known and returns a nil Identity for a signed-out
// reader.
type AuthProvider interface {
	Resolve(ctx context.Context) (*Identity, error)
}

// CredentialStore supplies the locally cached bearer credential.
type CredentialStore interface {
	BearerToken() (string, bool)
}

// Navigator performs the navigations the session can force: sending a
// signed-out reader to login, and leaving the viewer entirely.
type Navigator interface {
	NavigateToLogin()
	LeaveViewer()
}

// ViewFetcher performs the secure-view request. *Client satisfies it.
type ViewFetcher interface {
	FetchSecureView(ctx context.Context, bearerToken string, bookID uuid.UUID) (*ViewPayload, error)
}

// Session drives a single protected reading session for one book. Run
// advances the state machine once; there is no automatic retry, a failed
// session stays in StateError until the reader navigates away.
type Session struct {
	bookID    uuid.UUID
	auth      AuthProvider
	creds     CredentialStore
	fetcher   ViewFetcher
	navigator Navigator
	logger    *slog.Logger

	mu         sync.Mutex
	state      State
	payload    *ViewPayload
	errMessage string
}

// NewSession creates a session for the given book with required dependencies.
func NewSession(
	bookID uuid.UUID,
	auth AuthProvider,
	creds CredentialStore,
	fetcher ViewFetcher,
	navigator Navigator,
	logger *slog.Logger,
) *Session {
	return &Session{
		bookID:    bookID,
		auth:      auth,
		creds:     creds,
		fetcher:   fetcher,
		navigator: navigator,
		logger:    logger,
		state:     StateUnauthenticated,
	}
}

// Run advances the session to a terminal state: Ready, Error, or a
// navigation to login for signed-out readers. Context cancellation aborts
// the in-flight wait and leaves the state unchanged, so a session abandoned
// mid-fetch never publishes a stale result.
func (s *Session) Run(ctx context.Context) error {
	s.setState(StateAuthenticating)

	identity, err := s.auth.Resolve(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.fail(ErrViewUnavailable.Error())
		return err
	}
	if identity == nil {
		s.setState(StateUnauthenticated)
		s.navigator.NavigateToLogin()
		return nil
	}

	token, ok := s.creds.BearerToken()
	if !ok {
		s.fail(ErrAuthenticationRequired.Error())
		return ErrAuthenticationRequired
	}

	s.setState(StateFetching)

	payload, err := s.fetcher.FetchSecureView(ctx, token, s.bookID)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.logger != nil {
			s.logger.Error("secure view fetch failed",
				slog.String("book_id", s.bookID.String()),
				slog.String("reader_id", identity.UserID.String()),
				slog.Any("error", err),
			)
		}
		s.fail(userMessage(err))
		return err
	}

	s.mu.Lock()
	s.payload = payload
	s.state = StateReady
	s.mu.Unlock()

	return nil
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Payload returns the normalized secure-view result, nil until StateReady.
func (s *Session) Payload() *ViewPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload
}

// ErrorMessage returns the reader-facing failure message, empty outside
// StateError.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMessage
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) fail(message string) {
	s.mu.Lock()
	s.state = StateError
	s.errMessage = message
	s.mu.Unlock()
}

// userMessage maps a fetch error to the message shown to the reader. Only
// the missing-book condition carries its own text, everything else collapses
// to the generic failure.
func userMessage(err error) string {
	if apperrors.Is(err, ErrMissingBook) {
		return ErrMissingBook.Error()
	}
	return ErrViewUnavailable.Error()
}
