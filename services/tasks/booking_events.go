package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingCreated       = "booking:created"
	TypeBookingStatusChanged = "booking:status_changed"
)

// BookingEventPayload is the task body for booking lifecycle tasks.
type BookingEventPayload struct {
	EventID    string    `json:"eventId"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId,omitempty"`
	TripType   string    `json:"tripType,omitempty"`
	Status     string    `json:"status"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEventTask(taskType string, payload BookingEventPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		// Deduplicates re-enqueues of the same event for an hour.
		asynq.TaskID(payload.EventID),
		asynq.Retention(time.Hour),
	}
	return task, opts, nil
}

func ParseBookingEventPayload(task *asynq.Task) (BookingEventPayload, error) {
	var p BookingEventPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
