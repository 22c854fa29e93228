package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every service error wraps exactly one of these, so callers can
// branch with errors.Is(err, ErrConflict) and friends.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrFailure    = errors.New("operation failed")
)

func kindError(kind error, message string) error {
	return fmt.Errorf("%w: %s", kind, message)
}

var (
	ErrLoginInfoRequired       = kindError(ErrValidation, "user login information cannot be null")
	ErrUserInfoRequired        = kindError(ErrValidation, "user information cannot be null")
	ErrUserAlreadyExists       = kindError(ErrConflict, "user with same user id already exists")
	ErrRegistrationFailed      = kindError(ErrFailure, "failed to register user")
	ErrInvalidServerID         = kindError(ErrNotFound, "invalid server id")
	ErrInvalidUserID           = kindError(ErrNotFound, "invalid user id")
	ErrServerAlreadyRegistered = kindError(ErrConflict, "server is already registered to the user")
	ErrAuthenticationFailed    = kindError(ErrFailure, "team server authentication failed")

	ErrInvalidCredentials = kindError(ErrValidation, "invalid user id or password")
	ErrAccountLocked      = kindError(ErrValidation, "account is locked or inactive")
	ErrUserNotFound       = kindError(ErrNotFound, "user not found")

	ErrServerNameRequired = kindError(ErrValidation, "server name is required")
	ErrInvalidServerURL   = kindError(ErrValidation, "server url must be an absolute http(s) url")
	ErrServerNotFound     = kindError(ErrNotFound, "team server not found")

	ErrTitleRequired    = kindError(ErrValidation, "title is required")
	ErrInvalidDateRange = kindError(ErrValidation, "end date is before start date")
	ErrWorkItemNotFound = kindError(ErrNotFound, "work item not found")
)
