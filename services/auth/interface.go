package auth

import (
	"context"

	"safarexpress/models"
)

type AuthService interface {
	Register(ctx context.Context, input models.RegisterInput) (*models.Session, error)
	Login(ctx context.Context, input models.LoginInput) (*models.Session, error)
	// Refresh rotates a refresh token: the presented token is revoked and a
	// new pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
	// Logout revokes every active record of the token. Calling it again, or
	// with an unknown token, still succeeds.
	Logout(ctx context.Context, refreshToken string) error
}
