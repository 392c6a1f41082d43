package booking

import (
	"context"
	"time"

	"safarexpress/models"
)

// BookingsEndpoint scopes idempotency keys for booking creation.
const BookingsEndpoint = "/api/v1/bookings"

// ListLimit caps every booking listing.
const ListLimit = 100

// CreateResult is the outcome of CreateBooking. A replay carries the stored
// status of the first execution.
type CreateResult struct {
	Booking      *models.Booking `json:"booking"`
	Replayed     bool            `json:"replayed,omitempty"`
	ReplayStatus int             `json:"replayStatus,omitempty"`
}

type RouteResult struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	ETAMinutes int     `json:"etaMinutes"`
	DistanceKm float64 `json:"distanceKm"`
	BaseFare   float64 `json:"baseFare"`
}

type CabResult struct {
	ID            string     `json:"id"`
	CabType       string     `json:"cabType"`
	CarModel      string     `json:"carModel"`
	Multiplier    float64    `json:"multiplier"`
	AvailableFrom *time.Time `json:"availableFrom"`
	AvailableTo   *time.Time `json:"availableTo"`
}

type SearchResult struct {
	Pickup   string        `json:"pickup"`
	Dropoff  string        `json:"dropoff"`
	TripType string        `json:"tripType"`
	Routes   []RouteResult `json:"routes"`
	Cabs     []CabResult   `json:"cabs"`
	Message  string        `json:"message,omitempty"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, input models.BookingInput, actor models.Actor, requestID, idempotencyKey string) (*CreateResult, error)
	// SearchOptions lists routes and the cabs available on the pickup date.
	SearchOptions(ctx context.Context, input models.BookingInput) (*SearchResult, error)
	ListBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	GetBookingByID(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	GetBookingEvents(ctx context.Context, id string, actor models.Actor) ([]models.BookingEvent, error)
	// UpdateBookingStatus performs no role check; routes restrict it to admins.
	UpdateBookingStatus(ctx context.Context, id, status string, actor models.Actor, requestID string) (*models.Booking, error)
}
