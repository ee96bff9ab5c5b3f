package auth

import "taskvault/internal/domain/models"

// TokenVerifier defines the interface for access token verification.
// This abstraction keeps the middleware agnostic to how tokens are
// signed.
type TokenVerifier interface {
	// Verify validates a token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or missing
	// required claims.
	Verify(tokenString string) (*models.AccessClaims, error)
}
