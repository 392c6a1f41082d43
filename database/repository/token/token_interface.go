package tokenRepo

import (
	"context"
	"time"

	"safarexpress/models"
)

// RefreshTokenRepository stores hashed refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	// FindActive returns the un-revoked, unexpired record for (userID, hash),
	// or nil when none exists.
	FindActive(ctx context.Context, userID, tokenHash string, now time.Time) (*models.RefreshToken, error)
	// RevokeIfActive revokes a single record only if it is still un-revoked.
	// It reports whether this call performed the revocation.
	RevokeIfActive(ctx context.Context, id string, now time.Time) (bool, error)
	// RevokeByHash revokes every un-revoked record with the hash.
	RevokeByHash(ctx context.Context, tokenHash string, now time.Time) (int64, error)
}
