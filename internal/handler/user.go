package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/httputil"
	"taskvault/internal/permission"
)

// UserService defines the account operations required by the HTTP
// handlers.
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserView, error)
	Show(ctx context.Context, idOrUsername string) (*models.UserView, error)
	Update(ctx context.Context, actor permission.Actor, userID uuid.UUID, req *models.UpdateUserRequest) (*models.UserView, error)
	Delete(ctx context.Context, actor permission.Actor, userID uuid.UUID) error
}

// UserHandler handles user HTTP requests
type UserHandler struct {
	userService UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser registers a new account (public)
// POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, view)
}

// ShowUser returns the stripped view of a user by id or username
// GET /api/v1/users/{id_or_username}
func (h *UserHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := getActor(w, r); !ok {
		return
	}

	view, err := h.userService.Show(r.Context(), r.PathValue("id_or_username"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, view)
}

// UpdateUser modifies a user's fullname and/or username
// PUT /api/v1/users/{user_id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	userID, err := parseUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.userService.Update(r.Context(), actor, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondDetail(w, http.StatusOK, view, "User has been successfully updated")
}

// DeleteUser soft-deletes a user account
// DELETE /api/v1/users/{user_id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	userID, err := parseUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), actor, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondDetail(w, http.StatusOK, nil, "User has been successfully deleted")
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user_id must be a valid UUID", domain.ErrValidation)
	}
	return userID, nil
}
