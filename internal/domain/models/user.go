package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"taskvault/internal/config"
)

// UserRole is the account role enum.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is the persisted account record. Password holds the bcrypt hash,
// never the raw password, and is excluded from every response.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Username    string    `json:"username" db:"username"`
	Password    string    `json:"-" db:"password"`
	Fullname    *string   `json:"fullname" db:"fullname"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsSuperuser bool      `json:"is_superuser" db:"is_superuser"`
	Role        UserRole  `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UserView is the stripped representation returned by the API.
type UserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Fullname *string   `json:"fullname"`
	Role     UserRole  `json:"role"`
	IsActive bool      `json:"is_active"`
}

// View strips the user down to its public representation.
func (u *User) View() *UserView {
	return &UserView{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Fullname: u.Fullname,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// CreateUserRequest is the signup payload. RawPassword is hashed before
// it ever reaches the store.
type CreateUserRequest struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	RawPassword string  `json:"raw_password"`
	Fullname    *string `json:"fullname,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(1, config.MaxEmailLength),
			is.Email,
		),
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(config.MinUsernameLength, config.MaxUsernameLength),
		),
		validation.Field(&r.RawPassword,
			validation.Required,
			validation.Length(config.MinPasswordLength, config.MaxPasswordLength),
		),
		validation.Field(&r.Fullname,
			validation.Length(1, config.MaxFullnameLength),
		),
	)
}

// UpdateUserRequest carries the self-service/admin-editable fields.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Fullname *string `json:"fullname,omitempty"`
	Username *string `json:"username,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Fullname,
			validation.Length(1, config.MaxFullnameLength),
		),
		validation.Field(&r.Username,
			validation.Length(config.MinUsernameLength, config.MaxUsernameLength),
		),
	)
}
