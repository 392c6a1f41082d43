package models

import "time"

// RefreshToken maps a hashed refresh token to its owner. Records are revoked,
// never deleted.
type RefreshToken struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"userId" json:"userId"`
	TokenHash string     `bson:"tokenHash" json:"-"`
	ExpiresAt time.Time  `bson:"expiresAt" json:"expiresAt"`
	RevokedAt *time.Time `bson:"revokedAt" json:"revokedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}
