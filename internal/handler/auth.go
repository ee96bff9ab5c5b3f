package handler

import (
	"context"
	"log/slog"
	"net/http"

	"taskvault/internal/httputil"
	"taskvault/internal/service"
)

// AuthService defines the interface for credential exchange required by
// the HTTP handlers.
type AuthService interface {
	// Login verifies the credentials and issues a bearer token.
	Login(ctx context.Context, username, password string) (*service.TokenResponse, error)
}

// AuthHandler handles HTTP requests for token issuance
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login exchanges form-encoded credentials for a bearer token
// POST /auth/token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	// Missing form fields are a validation failure, not an
	// authentication one.
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		httputil.RespondError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	token, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, token)
}
