package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskvault/internal/domain/models"
)

// UserRepository provides point lookups and mutations for user accounts.
// Lookups return (nil, nil) when no row matches: absence is a normal
// outcome the caller interprets, not an error.
type UserRepository interface {
	// Create inserts a new user and fills in the generated id and
	// timestamps.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists all mutable fields of the user.
	Update(ctx context.Context, user *models.User) error
}
