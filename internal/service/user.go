package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"taskvault/internal/auth"
	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/domain/repositories"
	"taskvault/internal/permission"
)

// UserService manages the account lifecycle: signup, lookup, update and
// soft-delete. Every operation runs its permission composite before any
// mutation and performs its reads and single commit inside one
// transaction.
type UserService struct {
	users  repositories.UserRepository
	tx     repositories.TransactionManager
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, tx repositories.TransactionManager, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		tx:     tx,
		logger: logger,
	}
}

// Create registers a new account. Username and email must be free among
// all users, active or not; the raw password is hashed before the row is
// written and never leaves this function.
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserView, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var view *models.UserView
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		byUsername, err := s.users.GetByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		byEmail, err := s.users.GetByEmail(ctx, req.Email)
		if err != nil {
			return err
		}

		if d := permission.CreateUser(byUsername != nil, byEmail != nil); !d.Allowed() {
			return d.Reason()
		}

		hash, err := auth.HashPassword(req.RawPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := &models.User{
			Email:    req.Email,
			Username: req.Username,
			Password: hash,
			Fullname: req.Fullname,
			IsActive: true,
			Role:     models.RoleUser,
		}

		if err := s.users.Create(ctx, user); err != nil {
			return err
		}

		view = user.View()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "id", view.ID, "username", view.Username)

	return view, nil
}

// Show resolves a user by id or username and returns the stripped view.
func (s *UserService) Show(ctx context.Context, idOrUsername string) (*models.UserView, error) {
	var target *models.User
	var err error

	if id, parseErr := uuid.Parse(idOrUsername); parseErr == nil {
		target, err = s.users.GetByID(ctx, id)
	} else {
		target, err = s.users.GetByUsername(ctx, idOrUsername)
	}
	if err != nil {
		return nil, err
	}

	if d := permission.ShowUser(target); !d.Allowed() {
		return nil, d.Reason()
	}

	return target.View(), nil
}

// Update modifies the target's fullname and/or username. Only fields
// that are present, non-empty and different from the current value are
// applied; a username change re-checks uniqueness excluding the target
// itself.
func (s *UserService) Update(ctx context.Context, actor permission.Actor, userID uuid.UUID, req *models.UpdateUserRequest) (*models.UserView, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var view *models.UserView
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		target, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if d := permission.UpdateUser(actor, target); !d.Allowed() {
			return d.Reason()
		}

		changed := false

		if req.Username != nil && *req.Username != "" && *req.Username != target.Username {
			holder, err := s.users.GetByUsername(ctx, *req.Username)
			if err != nil {
				return err
			}
			taken := holder != nil && holder.ID != target.ID
			if d := permission.RenameUser(target, *req.Username, taken); !d.Allowed() {
				return d.Reason()
			}
			target.Username = *req.Username
			changed = true
		}

		if req.Fullname != nil && *req.Fullname != "" &&
			(target.Fullname == nil || *target.Fullname != *req.Fullname) {
			target.Fullname = req.Fullname
			changed = true
		}

		if changed {
			if err := s.users.Update(ctx, target); err != nil {
				return err
			}
		}

		view = target.View()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "id", view.ID, "actor_id", actor.ID)

	return view, nil
}

// Delete soft-deletes the target by clearing is_active. The row is never
// physically removed, and a second delete of the same user is denied.
func (s *UserService) Delete(ctx context.Context, actor permission.Actor, userID uuid.UUID) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		target, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if d := permission.DeleteUser(actor, target); !d.Allowed() {
			return d.Reason()
		}

		target.IsActive = false
		return s.users.Update(ctx, target)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deactivated", "id", userID, "actor_id", actor.ID)

	return nil
}
