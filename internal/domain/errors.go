package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// BadRequestError indicates a malformed request
	BadRequestError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *BadRequestError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusUnprocessableEntity }
func (e *BadRequestError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Is allows errors.Is() to match typed errors against the sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// Denial reasons carried to clients. The detail strings are part of the
// API contract and must not change.
var (
	ErrUserNotFound   = &NotFoundError{Message: "An user with given id doesn't exist"}
	ErrFolderNotFound = &NotFoundError{Message: "A folder with given id doesn't exist"}
	ErrParentNotFound = &NotFoundError{Message: "Given parent_id folder doesn't exist"}

	ErrNoAdminPermission = &ForbiddenError{Message: "You don't have admin permission"}
	ErrUsernameTaken     = &ForbiddenError{Message: "This username is already taken"}
	ErrEmailTaken        = &ForbiddenError{Message: "This email is already taken"}
	ErrAlreadyInactive   = &ForbiddenError{Message: "User already has been deleted"}
	ErrPrivateFolder     = &ForbiddenError{Message: "You can't see a private folder of other user"}
	ErrFolderCycle       = &ForbiddenError{Message: "You can't move a folder into itself or its own subfolder"}

	ErrInvalidCredentials = &UnauthorizedError{Message: "Invalid authentication credentials"}
	ErrUnauthenticated    = &UnauthorizedError{Message: "Could not validate user"}
	ErrTokenExpired       = &ForbiddenError{Message: "Token expired!"}
	ErrNoTokenExpiry      = &BadRequestError{Message: "No access token supplied"}
)

// AdminPeerForbidden denies a superuser acting on another superuser's
// account. action is the attempted operation ("update" or "delete").
func AdminPeerForbidden(action string) *ForbiddenError {
	return &ForbiddenError{
		Message: fmt.Sprintf("You can't %s other admin's data", action),
	}
}

// FolderNameTaken denies reuse of a folder name inside one owner's
// namespace.
func FolderNameTaken(action string) *ForbiddenError {
	return &ForbiddenError{
		Message: fmt.Sprintf("You can't %s a folder "+
			"with the same name which you already have", action),
	}
}

// ForeignParentFolder denies nesting a folder under a folder that belongs
// to a different owner.
func ForeignParentFolder(action string) *ForbiddenError {
	return &ForbiddenError{
		Message: fmt.Sprintf("You can't %s a nested folder "+
			"with the other user's folder", action),
	}
}
