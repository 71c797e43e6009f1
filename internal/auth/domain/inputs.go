package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreateClientInput carries the parameters for registering a service client.
type CreateClientInput struct {
	Name string
}

// CreateClientOutput carries the new client ID and the plain secret. The
// plain secret is only returned once; the stored record keeps the hash.
type CreateClientOutput struct {
	ClientID    uuid.UUID
	PlainSecret string
}

// IssueTokenInput carries the credentials presented for token issuance.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string
}

// IssueTokenOutput carries the plain bearer token and its deadline.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
