package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/domain/repositories"
	"taskvault/internal/permission"
)

// FolderService manages each owner's folder tree: creation under the
// per-owner name uniqueness and parent-ownership invariants, visibility,
// patch-style updates and hard cascading deletion.
type FolderService struct {
	folders repositories.FolderRepository
	tx      repositories.TransactionManager
	logger  *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folders repositories.FolderRepository, tx repositories.TransactionManager, logger *slog.Logger) *FolderService {
	return &FolderService{
		folders: folders,
		tx:      tx,
		logger:  logger,
	}
}

// Create adds a folder to the actor's tree. The name must be free in the
// actor's namespace and the parent, when given, must exist and belong to
// the actor.
func (s *FolderService) Create(ctx context.Context, actor permission.Actor, req *models.CreateFolderRequest) (*models.Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var created *models.Folder
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		existing, err := s.folders.GetByOwnerAndName(ctx, actor.ID, req.Name)
		if err != nil {
			return err
		}

		var parent *models.Folder
		if req.ParentID != nil {
			parent, err = s.folders.GetByID(ctx, *req.ParentID)
			if err != nil {
				return err
			}
		}

		d := permission.CreateFolder(actor.ID, existing != nil, req.ParentID != nil, parent)
		if !d.Allowed() {
			return d.Reason()
		}

		isPrivate := true
		if req.IsPrivate != nil {
			isPrivate = *req.IsPrivate
		}

		folder := &models.Folder{
			Name:        req.Name,
			Description: req.Description,
			IsActive:    true,
			IsPrivate:   isPrivate,
			OwnerID:     actor.ID,
			ParentID:    req.ParentID,
		}

		if err := s.folders.Create(ctx, folder); err != nil {
			return err
		}

		created = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", created.ID,
		"name", created.Name,
		"owner_id", created.OwnerID,
		"parent_id", created.ParentID,
	)

	return created, nil
}

// Show loads a folder the actor is allowed to see. Private folders are
// visible only to their owner and to superusers.
func (s *FolderService) Show(ctx context.Context, actor permission.Actor, folderID uuid.UUID) (*models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if d := permission.ViewFolder(actor, folder); !d.Allowed() {
		return nil, d.Reason()
	}

	return folder, nil
}

// ListForOwner returns every folder owned by the given user as a flat
// list; clients rebuild the hierarchy from parent_id.
func (s *FolderService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	return s.folders.ListByOwner(ctx, ownerID)
}

// Update applies the patch fields that are present and differ from the
// target's current values. Renames are checked against the target
// owner's namespace, and a new parent must belong to the same owner.
// ParentID is tri-state: JSON null moves the folder to the root.
func (s *FolderService) Update(ctx context.Context, actor permission.Actor, folderID uuid.UUID, req *models.UpdateFolderRequest) (*models.Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var updated *models.Folder
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		target, err := s.folders.GetByID(ctx, folderID)
		if err != nil {
			return err
		}

		if d := permission.MutateFolder(actor, target); !d.Allowed() {
			return d.Reason()
		}

		changed := false

		if req.Name != nil && *req.Name != "" && *req.Name != target.Name {
			holder, err := s.folders.GetByOwnerAndName(ctx, target.OwnerID, *req.Name)
			if err != nil {
				return err
			}
			taken := holder != nil && holder.ID != target.ID
			if d := permission.RenameFolder(target, *req.Name, taken); !d.Allowed() {
				return d.Reason()
			}
			target.Name = *req.Name
			changed = true
		}

		if req.Description != nil && *req.Description != "" &&
			(target.Description == nil || *target.Description != *req.Description) {
			target.Description = req.Description
			changed = true
		}

		if req.IsActive != nil && *req.IsActive != target.IsActive {
			target.IsActive = *req.IsActive
			changed = true
		}

		if req.ParentID.Present {
			if req.ParentID.Value == nil {
				// null = move to root
				if target.ParentID != nil {
					target.ParentID = nil
					changed = true
				}
			} else if target.ParentID == nil || *target.ParentID != *req.ParentID.Value {
				parent, err := s.folders.GetByID(ctx, *req.ParentID.Value)
				if err != nil {
					return err
				}
				inSubtree := false
				if parent != nil {
					inSubtree, err = s.isInSubtree(ctx, target.ID, parent)
					if err != nil {
						return err
					}
				}
				if d := permission.ReparentFolder(target, parent, inSubtree); !d.Allowed() {
					return d.Reason()
				}
				target.ParentID = req.ParentID.Value
				changed = true
			}
		}

		if changed {
			if err := s.folders.Update(ctx, target); err != nil {
				return err
			}
		}

		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated", "id", updated.ID, "actor_id", actor.ID)

	return updated, nil
}

// isInSubtree reports whether candidate sits inside the subtree rooted
// at rootID, following parent_id links upward. The stored tree has no
// cycles, so the walk terminates at a root folder.
func (s *FolderService) isInSubtree(ctx context.Context, rootID uuid.UUID, candidate *models.Folder) (bool, error) {
	for cur := candidate; cur != nil; {
		if cur.ID == rootID {
			return true, nil
		}
		if cur.ParentID == nil {
			return false, nil
		}
		next, err := s.folders.GetByID(ctx, *cur.ParentID)
		if err != nil {
			return false, err
		}
		cur = next
	}
	return false, nil
}

// Delete removes the folder and its entire descendant subtree. This is a
// hard delete; the freed names become reusable immediately.
func (s *FolderService) Delete(ctx context.Context, actor permission.Actor, folderID uuid.UUID) error {
	var removed int64
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		target, err := s.folders.GetByID(ctx, folderID)
		if err != nil {
			return err
		}

		if d := permission.MutateFolder(actor, target); !d.Allowed() {
			return d.Reason()
		}

		removed, err = s.folders.DeleteSubtree(ctx, target.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"actor_id", actor.ID,
		"rows_removed", removed,
	)

	return nil
}
