package events

import (
	"context"
	"fmt"

	"safarexpress/services/tasks"

	"github.com/hibiken/asynq"
)

// AsynqPublisher enqueues booking events as asynq tasks on Redis.
type AsynqPublisher struct {
	client *asynq.Client
}

func NewAsynqPublisher(addr, password string, db int) *AsynqPublisher {
	return &AsynqPublisher{client: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func taskType(eventType string) (string, error) {
	switch eventType {
	case BookingCreated:
		return tasks.TypeBookingCreated, nil
	case BookingStatusChanged:
		return tasks.TypeBookingStatusChanged, nil
	}
	return "", fmt.Errorf("no task type for event %q", eventType)
}

func (p *AsynqPublisher) Publish(ctx context.Context, evt Event) error {
	typ, err := taskType(evt.Type)
	if err != nil {
		return err
	}
	task, opts, err := tasks.NewBookingEventTask(typ, tasks.BookingEventPayload{
		EventID:    evt.ID,
		BookingID:  evt.BookingID,
		UserID:     evt.UserID,
		TripType:   evt.TripType,
		Status:     evt.Status,
		From:       evt.From,
		To:         evt.To,
		RequestID:  evt.RequestID,
		OccurredAt: evt.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to build task: %w", err)
	}
	if _, err := p.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", typ, err)
	}
	return nil
}

func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}
