package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"safarexpress/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) AppendEvent(ctx context.Context, event *models.BookingEvent) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if _, err := r.events.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to append booking event: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) ListEvents(ctx context.Context, bookingID string) ([]models.BookingEvent, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.events.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.BookingEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode booking events: %w", err)
	}
	return events, nil
}
