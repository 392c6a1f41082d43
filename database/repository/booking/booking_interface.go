package bookingRepo

import (
	"context"
	"errors"
	"time"

	"safarexpress/models"
)

var (
	ErrNotFound = errors.New("booking not found")
	// ErrStale is returned when a guarded status update matched no document.
	ErrStale = errors.New("booking changed concurrently")
)

// BookingRepository persists bookings and their append-only event trail.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error)
	ListAll(ctx context.Context, limit int64) ([]models.Booking, error)
	// UpdateStatus moves a booking from one status to another only if its
	// status and version still match.
	UpdateStatus(ctx context.Context, id, from string, version int, to string) (*models.Booking, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	AppendEvent(ctx context.Context, event *models.BookingEvent) error
	ListEvents(ctx context.Context, bookingID string) ([]models.BookingEvent, error)
}
