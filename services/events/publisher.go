// Package events fans booking lifecycle changes out to a background queue.
package events

import (
	"context"
	"fmt"
	"time"

	"safarexpress/config"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
)

// Event describes one booking lifecycle change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId,omitempty"`
	TripType   string    `json:"tripType,omitempty"`
	Status     string    `json:"status"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers events. Callers treat delivery as best effort.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// NewPublisher builds the publisher selected by EVENTS_BACKEND.
func NewPublisher(cfg config.Config) (Publisher, error) {
	switch cfg.EventsBackend {
	case "", "none":
		return NopPublisher{}, nil
	case "asynq":
		return NewAsynqPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisQueueDB), nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.EventsBackend)
	}
}
