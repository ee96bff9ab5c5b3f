package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload carried by access tokens. Subject holds the
// username; UserID and IsSuperuser are custom claims so authorization
// never re-reads the user row just to identify the actor.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID      string `json:"id"`
	IsSuperuser bool   `json:"is_superuser"`
}

// GetUsername returns the username from the subject claim.
func (c *AccessClaims) GetUsername() string {
	return c.Subject
}
