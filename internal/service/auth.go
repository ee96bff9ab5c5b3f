package service

import (
	"context"
	"log/slog"

	"taskvault/internal/auth"
	"taskvault/internal/domain"
	"taskvault/internal/domain/repositories"
)

// TokenResponse is the login response body. The shape is fixed by the
// API contract.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService exchanges username/password credentials for bearer tokens.
type AuthService struct {
	users  repositories.UserRepository
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, issuer *auth.TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		issuer: issuer,
		logger: logger,
	}
}

// Login verifies the credentials and issues a bearer token. Unknown
// username, wrong password and deactivated account are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil || !auth.CheckPassword(password, user.Password) || !user.IsActive {
		s.logger.Debug("authentication failed", "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("token issued", "user_id", user.ID, "username", user.Username)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
