// Package idempotencyRepo stores the first response for a client-supplied
// idempotency key so that retries can be replayed.
package idempotencyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safarexpress/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateKey = errors.New("idempotency key already recorded")

type IdempotencyRepository interface {
	// FindReplay returns the stored response, or nil when the triple is unused.
	FindReplay(ctx context.Context, key, userID, endpoint string) (*models.IdempotencyKey, error)
	// Record stores a response. A second record for the same triple fails
	// with ErrDuplicateKey.
	Record(ctx context.Context, key, userID, endpoint string, status int, body []byte) error
}

type MongoIdempotencyRepo struct {
	coll *mongo.Collection
}

func NewMongoIdempotencyRepo(db *mongo.Database) IdempotencyRepository {
	repo := &MongoIdempotencyRepo{coll: db.Collection("idempotency_keys")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create idempotency indexes: %v\n", err)
	}
	return repo
}

func (r *MongoIdempotencyRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "key", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "endpoint", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoIdempotencyRepo) FindReplay(ctx context.Context, key, userID, endpoint string) (*models.IdempotencyKey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.IdempotencyKey
	err := r.coll.FindOne(ctx, bson.M{"key": key, "userId": userID, "endpoint": endpoint}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch idempotency record: %w", err)
	}
	return &rec, nil
}

func (r *MongoIdempotencyRepo) Record(ctx context.Context, key, userID, endpoint string, status int, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, models.IdempotencyKey{
		Key:            key,
		UserID:         userID,
		Endpoint:       endpoint,
		ResponseStatus: status,
		ResponseBody:   body,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}
