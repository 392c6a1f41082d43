package tokenRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safarexpress/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRefreshTokenRepo struct {
	coll *mongo.Collection
}

func NewMongoRefreshTokenRepo(db *mongo.Database) RefreshTokenRepository {
	repo := &MongoRefreshTokenRepo{coll: db.Collection("refresh_tokens")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create refresh token indexes: %v\n", err)
	}
	return repo
}

func (r *MongoRefreshTokenRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tokenHash", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *MongoRefreshTokenRepo) FindActive(ctx context.Context, userID, tokenHash string, now time.Time) (*models.RefreshToken, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"userId":    userID,
		"tokenHash": tokenHash,
		"revokedAt": nil,
		"expiresAt": bson.M{"$gt": now},
	}
	var token models.RefreshToken
	if err := r.coll.FindOne(ctx, filter).Decode(&token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch refresh token: %w", err)
	}
	return &token, nil
}

func (r *MongoRefreshTokenRepo) RevokeIfActive(ctx context.Context, id string, now time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": now}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoRefreshTokenRepo) RevokeByHash(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"tokenHash": tokenHash, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return res.ModifiedCount, nil
}
