package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a short-lived service bearer token, stored as a SHA-256 hash.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ClientID  uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
