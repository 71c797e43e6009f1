// Package domain defines the access link entity and its validation rules.
//
// An access link is a token-bound, time-limited, revocable grant of access to
// one book for one user. Actual access control is enforced solely by validating
// these grants server-side; client-side viewer hardening is a deterrent only
// and never an authorization input.
package domain

import (
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/afrireads/bookgate/internal/catalog/domain"
)

// Validation reasons reported for invalid tokens. Revocation is checked before
// expiry, so a revoked-and-expired link reports revocation.
const (
	ReasonNotFound = "Token not found"
	ReasonRevoked  = "Token has been revoked"
	ReasonExpired  = "Token has expired"
)

// AccessLink represents a single grant of time-bounded access to one book for
// one user. The bearer token is stored as a SHA-256 hash; the plain token is
// returned exactly once at creation.
type AccessLink struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	BookID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time

	// Book and User are populated on joined reads for immediate use by callers.
	Book *catalogDomain.Book
	User *catalogDomain.User
}

// Revoked reports whether the link has been revoked. Revocation is a one-way
// transition; there is no operation that clears RevokedAt.
func (l *AccessLink) Revoked() bool {
	return l.RevokedAt != nil
}

// Expired reports whether the link's deadline has passed at the given instant.
// A link is only live strictly before its deadline.
func (l *AccessLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// Revoke marks the link revoked at the given instant. Calling Revoke on an
// already-revoked link keeps the original revocation time.
func (l *AccessLink) Revoke(at time.Time) {
	if l.RevokedAt != nil {
		return
	}
	l.RevokedAt = &at
}

// Evaluate produces the validation verdict for the link at the given instant.
// A link is valid iff it is neither revoked nor expired; both conditions are
// checked, revocation first.
func (l *AccessLink) Evaluate(now time.Time) *ValidationResult {
	if l.Revoked() {
		return Invalid(ReasonRevoked)
	}
	if l.Expired(now) {
		return Invalid(ReasonExpired)
	}
	return Valid(l)
}

// ValidationResult is the discriminated outcome of validating an access token.
// Exactly one of Reason (invalid) or AccessLink (valid) carries information.
type ValidationResult struct {
	IsValid    bool
	Reason     string
	AccessLink *AccessLink
}

// Valid builds a successful validation result carrying the link.
func Valid(link *AccessLink) *ValidationResult {
	return &ValidationResult{IsValid: true, AccessLink: link}
}

// Invalid builds a failed validation result carrying the reason.
func Invalid(reason string) *ValidationResult {
	return &ValidationResult{IsValid: false, Reason: reason}
}
