package permission

import (
	"github.com/google/uuid"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
)

// ViewFolder decides whether the actor may see the target folder.
// Private folders are visible only to their owner and to superusers.
func ViewFolder(actor Actor, target *models.Folder) Decision {
	if target == nil {
		return Deny(domain.ErrFolderNotFound)
	}
	if target.IsPrivate && target.OwnerID != actor.ID && !actor.IsSuperuser {
		return Deny(domain.ErrPrivateFolder)
	}
	return Allow()
}

// MutateFolder decides whether the actor may update or delete the target
// folder: owner or any superuser. Unlike user accounts there is no
// admin-peer restriction on folders.
func MutateFolder(actor Actor, target *models.Folder) Decision {
	if target == nil {
		return Deny(domain.ErrFolderNotFound)
	}
	if target.OwnerID != actor.ID && !actor.IsSuperuser {
		return Deny(domain.ErrNoAdminPermission)
	}
	return Allow()
}

// CreateFolder decides whether a new folder may be created for ownerID.
// nameTaken reflects a lookup in the owner's namespace; parent is the
// resolved parent folder when the request named one (parentRequested),
// nil when the lookup found nothing.
func CreateFolder(ownerID uuid.UUID, nameTaken bool, parentRequested bool, parent *models.Folder) Decision {
	if nameTaken {
		return Deny(domain.FolderNameTaken("create"))
	}
	if parentRequested {
		if parent == nil {
			return Deny(domain.ErrParentNotFound)
		}
		if parent.OwnerID != ownerID {
			return Deny(domain.ForeignParentFolder("create"))
		}
	}
	return Allow()
}

// RenameFolder decides whether the target may take a new name inside its
// owner's namespace. Keeping the current name is never a conflict.
func RenameFolder(target *models.Folder, newName string, taken bool) Decision {
	if newName == target.Name {
		return Allow()
	}
	if taken {
		return Deny(domain.FolderNameTaken("update"))
	}
	return Allow()
}

// ReparentFolder decides whether the target may move under the resolved
// parent. The parent must exist, belong to the target's owner, and sit
// outside the target's own subtree; parentInSubtree is the caller's
// walk of the id closure. Self-parenting or moving under a descendant
// would cut the subtree loose from the root and send the recursive
// cascade query into a loop.
func ReparentFolder(target *models.Folder, parent *models.Folder, parentInSubtree bool) Decision {
	if parent == nil {
		return Deny(domain.ErrParentNotFound)
	}
	if parent.OwnerID != target.OwnerID {
		return Deny(domain.ForeignParentFolder("update"))
	}
	if parent.ID == target.ID || parentInSubtree {
		return Deny(domain.ErrFolderCycle)
	}
	return Allow()
}
