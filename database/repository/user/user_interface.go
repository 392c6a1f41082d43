package userRepo

import (
	"context"
	"errors"

	"safarexpress/models"
)

var ErrEmailTaken = errors.New("email already registered")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// SetRole returns the updated user, or nil, nil when no user has the email.
	SetRole(ctx context.Context, email, role string) (*models.User, error)
}
