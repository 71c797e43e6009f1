// Package domain defines the service-client authentication model.
//
// Clients are backend collaborators (the storefront worker, operator tooling)
// that authenticate with an ID + secret and exchange them for short-lived
// bearer tokens. Reader end users never hold a client; they are authenticated
// separately via externally issued JWTs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a backend service allowed to call the issuer API.
type Client struct {
	ID        uuid.UUID
	Secret    string //nolint:gosec // hashed client secret (not plaintext)
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
