// Package service provides credential services for service-client authentication.
//
// Client secrets are long-lived and hashed with Argon2id; service tokens are
// short-lived and hashed with SHA-256, which is sufficient for high-entropy
// random values and cheap enough for per-request verification.
package service

// SecretService defines operations for client secret generation and validation.
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns the plain secret (shared with the client exactly once) and the
	// hashed version for storage.
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret for storage.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain secret against a stored hash in
	// constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService defines operations for service token generation and hashing.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns the plain token and its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a presented token for lookup.
	HashToken(plainToken string) string
}
