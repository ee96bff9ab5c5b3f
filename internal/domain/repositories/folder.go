package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskvault/internal/domain/models"
)

// FolderRepository provides point lookups and mutations for folders.
// Lookups return (nil, nil) when no row matches.
type FolderRepository interface {
	// Create inserts a new folder and fills in the generated id and
	// timestamps.
	Create(ctx context.Context, folder *models.Folder) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Folder, error)

	// ListByOwner returns every folder owned by the given user as a flat
	// list; clients reconstruct the hierarchy via parent_id.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error)

	// Update persists all mutable fields of the folder.
	Update(ctx context.Context, folder *models.Folder) error

	// DeleteSubtree removes the folder and every transitive descendant,
	// returning the number of rows deleted. Zero means the folder did
	// not exist.
	DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error)
}
