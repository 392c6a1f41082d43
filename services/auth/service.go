package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tokenRepo "safarexpress/database/repository/token"
	userRepo "safarexpress/database/repository/user"
	"safarexpress/models"
	"safarexpress/services/token"
	"safarexpress/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

// DefaultAuthService is the production implementation of AuthService.
type DefaultAuthService struct {
	Users      userRepo.UserRepository
	Tokens     tokenRepo.RefreshTokenRepository
	Signer     *token.Service
	BcryptCost int
	Now        func() time.Time
}

func NewAuthService(users userRepo.UserRepository, tokens tokenRepo.RefreshTokenRepository, signer *token.Service, bcryptCost int) *DefaultAuthService {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &DefaultAuthService{
		Users:      users,
		Tokens:     tokens,
		Signer:     signer,
		BcryptCost: bcryptCost,
		Now:        time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *DefaultAuthService) Register(ctx context.Context, input models.RegisterInput) (*models.Session, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	utils.GetLogger().Info("User registered", zap.String("userId", user.ID))
	return s.createSession(ctx, user)
}

func (s *DefaultAuthService) Login(ctx context.Context, input models.LoginInput) (*models.Session, error) {
	user, err := s.Users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.createSession(ctx, user)
}

func (s *DefaultAuthService) Refresh(ctx context.Context, raw string) (*models.Session, error) {
	claims, err := s.Signer.VerifyRefreshToken(raw)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	now := s.Now()
	stored, err := s.Tokens.FindActive(ctx, claims.UserID(), token.HashToken(raw), now)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrRefreshInactive
	}

	// Only the caller that flips revokedAt may continue.
	revoked, err := s.Tokens.RevokeIfActive(ctx, stored.ID, now)
	if err != nil {
		return nil, err
	}
	if !revoked {
		return nil, ErrRefreshInactive
	}

	user, err := s.Users.GetByID(ctx, claims.UserID())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.createSession(ctx, user)
}

func (s *DefaultAuthService) Logout(ctx context.Context, raw string) error {
	n, err := s.Tokens.RevokeByHash(ctx, token.HashToken(raw), s.Now())
	if err != nil {
		return err
	}
	utils.GetLogger().Debug("Refresh tokens revoked", zap.Int64("count", n))
	return nil
}

func (s *DefaultAuthService) createSession(ctx context.Context, user *models.User) (*models.Session, error) {
	access, err := s.Signer.SignAccessToken(user.ID, user.Role, user.Email, 0)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Signer.SignRefreshToken(user.ID, user.Role, user.Email, 0)
	if err != nil {
		return nil, err
	}

	claims, err := s.Signer.VerifyRefreshToken(refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to decode new refresh token: %w", err)
	}
	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: token.HashToken(refresh),
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: s.Now(),
	}
	if err := s.Tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	return &models.Session{
		User:         user.Public(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
