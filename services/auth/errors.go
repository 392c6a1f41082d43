package auth

import (
	"errors"

	"safarexpress/utils"
)

var (
	ErrEmailExists        = utils.Conflict("email_exists", "Email already registered.")
	ErrInvalidCredentials = utils.Unauthorized("invalid_credentials", "Invalid credentials.")
	ErrInvalidRefresh     = utils.Unauthorized("invalid_refresh", "Invalid refresh token.")
	ErrRefreshInactive    = utils.Unauthorized("refresh_inactive", "Refresh token is not active.")
	ErrUserNotFound       = utils.Unauthorized("user_not_found", "User not found for token.")
)

// Startup errors from EnsureAdmin.
var (
	ErrAdminEmailMissing = errors.New("admin email is empty")
	ErrAdminNotFound     = errors.New("no user with the admin email and no admin password to create one")
	ErrAdminPasswordWeak = errors.New("admin password must be at least 8 characters")
)
