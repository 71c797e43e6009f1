package domain

import "github.com/google/uuid"

// CreateAccessLinkInput carries the parameters for issuing a new access link.
// ExpiresInHours of zero means the configured default lifetime applies;
// fractional and negative values are honored as given, which lets operators
// mint already-expired links for testing validation paths.
type CreateAccessLinkInput struct {
	UserID         uuid.UUID
	BookID         uuid.UUID
	ExpiresInHours float64
}

// CreateAccessLinkOutput carries the issued link together with the plain
// bearer token and the shareable URL. The plain token is only returned once;
// the stored record keeps just its hash.
type CreateAccessLinkOutput struct {
	AccessLink *AccessLink
	PlainToken string
	ShareURL   string
}
