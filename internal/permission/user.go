package permission

import (
	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
)

// CreateUser decides whether a signup may proceed. The taken flags are
// looked up by the caller against all users, active or not: soft-deleted
// accounts keep their username and email reserved.
func CreateUser(usernameTaken, emailTaken bool) Decision {
	if usernameTaken {
		return Deny(domain.ErrUsernameTaken)
	}
	if emailTaken {
		return Deny(domain.ErrEmailTaken)
	}
	return Allow()
}

// ShowUser decides whether a user lookup result may be returned.
func ShowUser(target *models.User) Decision {
	if target == nil {
		return Deny(domain.ErrUserNotFound)
	}
	return Allow()
}

// UpdateUser decides whether the actor may modify the target account.
// Self-service is always allowed. A superuser may act on ordinary users
// but never on a different superuser's account.
func UpdateUser(actor Actor, target *models.User) Decision {
	return mutateUser(actor, target, "update")
}

// DeleteUser decides whether the actor may soft-delete the target
// account. An inactive target cannot be deleted again.
func DeleteUser(actor Actor, target *models.User) Decision {
	if d := mutateUser(actor, target, "delete"); !d.Allowed() {
		return d
	}
	if !target.IsActive {
		return Deny(domain.ErrAlreadyInactive)
	}
	return Allow()
}

// RenameUser decides whether the target may take a new username. Keeping
// the current username is never a conflict.
func RenameUser(target *models.User, newUsername string, taken bool) Decision {
	if newUsername == target.Username {
		return Allow()
	}
	if taken {
		return Deny(domain.ErrUsernameTaken)
	}
	return Allow()
}

func mutateUser(actor Actor, target *models.User, action string) Decision {
	if target == nil {
		return Deny(domain.ErrUserNotFound)
	}
	if actor.ID == target.ID {
		return Allow()
	}
	if !actor.IsSuperuser {
		return Deny(domain.ErrNoAdminPermission)
	}
	if target.IsSuperuser {
		return Deny(domain.AdminPeerForbidden(action))
	}
	return Allow()
}
