package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
)

// TokenIssuer signs and verifies access tokens with a process-wide
// secret. Tokens carry the subject username, the user id and the
// superuser flag, plus an absolute expiry instant.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// NewTokenIssuer creates a token issuer. secret must not be empty; ttl is
// the lifetime stamped into every issued token.
func NewTokenIssuer(secret string, ttl time.Duration, logger *slog.Logger) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret cannot be empty")
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Issue signs a new access token for the given user.
func (i *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID:      user.ID.String(),
		IsSuperuser: user.IsSuperuser,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify validates a token string and extracts its claims. Expired
// tokens and tokens without an expiry are rejected with their own
// reasons; every other failure (bad signature, wrong algorithm, missing
// subject claims) is reported as a generic authentication failure.
func (i *TokenIssuer) Verify(tokenString string) (*models.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AccessClaims{},
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		// Prevent algorithm confusion attacks - tokens are always HS256
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		i.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*models.AccessClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	if claims.Subject == "" || claims.UserID == "" {
		i.logger.Debug("token missing subject claims")
		return nil, domain.ErrUnauthenticated
	}

	if claims.ExpiresAt == nil {
		return nil, domain.ErrNoTokenExpiry
	}

	return claims, nil
}
