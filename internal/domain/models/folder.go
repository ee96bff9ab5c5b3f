package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"taskvault/internal/config"
	"taskvault/internal/httputil"
)

// Folder is a node in an owner's folder tree. ParentID nil means the
// folder sits at the root of the owner's namespace.
type Folder struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	IsPrivate   bool       `json:"is_private" db:"is_private"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	ParentID    *uuid.UUID `json:"parent_id" db:"parent_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateFolderRequest is the folder creation payload. The owner is always
// the authenticated actor, never taken from the body.
type CreateFolderRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsPrivate   *bool      `json:"is_private,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&r.Description,
			validation.Length(1, config.MaxFolderDescriptionLength),
		),
	)
}

// UpdateFolderRequest carries the mutable folder fields. ParentID is
// tri-state: absent leaves the parent unchanged, JSON null detaches the
// folder to the root.
type UpdateFolderRequest struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	IsActive    *bool                 `json:"is_active,omitempty"`
	ParentID    httputil.OptionalUUID `json:"parent_id,omitempty"`
}

func (r UpdateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&r.Description,
			validation.Length(1, config.MaxFolderDescriptionLength),
		),
	)
}
