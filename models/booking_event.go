package models

import "time"

const (
	EventCreated       = "CREATED"
	EventStatusChanged = "STATUS_CHANGED"
)

// EventActor identifies who triggered a booking event.
type EventActor struct {
	UserID string `bson:"userId" json:"userId"` // empty for guests
	Role   string `bson:"role" json:"role"`     // "guest" when anonymous
}

// BookingEvent is an append-only record of a booking lifecycle transition.
type BookingEvent struct {
	ID        string         `bson:"id" json:"id"`
	BookingID string         `bson:"bookingId" json:"bookingId"`
	EventType string         `bson:"eventType" json:"eventType"`
	Actor     EventActor     `bson:"actor" json:"actor"`
	Payload   map[string]any `bson:"payload" json:"payload"`
	RequestID string         `bson:"requestId" json:"requestId"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
