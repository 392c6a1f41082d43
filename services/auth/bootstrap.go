package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "safarexpress/database/repository/user"
	"safarexpress/models"
	"safarexpress/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minAdminPasswordLength = 8

// EnsureAdmin makes the user with email an admin. An existing account is
// promoted in place; otherwise one is created when password is given.
func (s *DefaultAuthService) EnsureAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrAdminEmailMissing
	}

	user, err := s.Users.SetRole(ctx, email, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if user != nil {
		utils.GetLogger().Info("Promoted user to admin", zap.String("userId", user.ID))
		return user, nil
	}

	if password == "" {
		return nil, ErrAdminNotFound
	}
	if len(password) < minAdminPasswordLength {
		return nil, ErrAdminPasswordWeak
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user = &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			// Registered between the two calls.
			return s.Users.SetRole(ctx, email, models.RoleAdmin)
		}
		return nil, err
	}
	utils.GetLogger().Info("Created admin user", zap.String("userId", user.ID))
	return user, nil
}
