// Package service provides access token generation and hashing.
package service

// TokenService generates and hashes access link bearer tokens.
type TokenService interface {
	// GenerateToken creates a new random access token. Returns the plain token
	// (handed to the caller exactly once) and its hash (stored at rest).
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a presented plain token for storage lookup.
	HashToken(plainToken string) string
}
